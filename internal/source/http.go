package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/luqmanhadi/oshikatsu/internal/apperrors"
	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/models"
	"github.com/luqmanhadi/oshikatsu/internal/parser"
)

// maxDocumentSize bounds how much of a remote document is read
const maxDocumentSize = 10 << 20

// StatusError reports a non-200 answer from a remote data source
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}

// document is a fetched, still undecoded, data document
type document struct {
	body        []byte
	contentType string
}

// HTTPSource fetches the data document from a URL on every Load
type HTTPSource struct {
	httpClient  *http.Client
	url         string
	userAgent   string
	retryPolicy retrypolicy.RetryPolicy[*document]
}

// NewHTTPSource creates a remote source with proxy, timeout and retry settings from cfg
func NewHTTPSource(cfg *config.Config) *HTTPSource {
	logger := config.GetLogger()

	timeout := 10 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 10s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its pooling, HTTP/2 and dial timeouts
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	retries := cfg.ClientRetries
	if retries < 0 {
		retries = 0
	}

	return &HTTPSource{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newCompressionTransport(baseTransport),
		},
		url:       cfg.DataSource,
		userAgent: cfg.UserAgent,
		retryPolicy: retrypolicy.NewBuilder[*document]().
			HandleIf(func(_ *document, err error) bool {
				return isRetryable(err)
			}).
			WithMaxRetries(retries).
			WithBackoff(50*time.Millisecond, time.Second).
			ReturnLastFailure().
			Build(),
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

// Load fetches and decodes the remote document. Transport failures and 5xx/429
// answers are retried; any other failure aborts immediately.
func (s *HTTPSource) Load(ctx context.Context) (list []models.Oshi, err error) {
	defer func() { recordRead("http", err) }()

	doc, err := failsafe.With[*document](s.retryPolicy).WithContext(ctx).Get(func() (*document, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, &apperrors.ErrDataSource{}) {
			return nil, err
		}
		return nil, apperrors.NewDataSourceError(s.url, err)
	}

	return parser.NewOshiParser(doc.contentType).Parse(s.url, bytes.NewReader(doc.body))
}

func (s *HTTPSource) fetch(ctx context.Context) (*document, error) {
	logger := config.GetLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, apperrors.NewDataSourceError(s.url, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", s.url).Msg("Failed to fetch oshi data")
		return nil, apperrors.NewDataSourceError(s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Str("url", s.url).Msg("Unexpected status fetching oshi data")
		return nil, apperrors.NewDataSourceError(s.url, &StatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, apperrors.NewDataSourceError(s.url, err)
	}
	if len(body) > maxDocumentSize {
		return nil, apperrors.NewDataSourceError(s.url, fmt.Errorf("document exceeds %d bytes", maxDocumentSize))
	}

	logger.Debug().Str("url", s.url).Int("size", len(body)).Msg("Fetched oshi data")
	return &document{
		body:        body,
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError || statusErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
