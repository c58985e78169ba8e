package source

import (
	"context"
	"net/url"

	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/metrics"
	"github.com/luqmanhadi/oshikatsu/internal/models"
)

// Source defines the interface for loading the oshi records.
// Every call to Load performs a fresh read; nothing is retained between calls.
type Source interface {
	Load(ctx context.Context) ([]models.Oshi, error)

	// Name identifies the source in logs and errors (a path or a URL).
	Name() string
}

// New returns the source matching cfg.DataSource: an HTTP source for http(s) URLs,
// a file source for everything else.
func New(cfg *config.Config) Source {
	if isRemote(cfg.DataSource) {
		return NewHTTPSource(cfg)
	}
	return NewFileSource(cfg.DataSource)
}

func isRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func recordRead(kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DataSourceReadsTotal.WithLabelValues(kind, status).Inc()
}
