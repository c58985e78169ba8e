package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/source"
)

// DefaultCheckInterval is used when the configured interval is not positive
const DefaultCheckInterval = 30 * time.Second

// HealthMonitor periodically reads the data source and publishes the result
// as the serving status of the health server
type HealthMonitor struct {
	source   source.Source
	health   *health.Server
	interval time.Duration
}

// NewHealthMonitor creates a monitor for src reporting to hs
func NewHealthMonitor(src source.Source, hs *health.Server, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &HealthMonitor{
		source:   src,
		health:   hs,
		interval: interval,
	}
}

// Check reads the source once and updates both the overall and the page status
func (m *HealthMonitor) Check(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if _, err := m.source.Load(ctx); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("source", m.source.Name()).Msg("Health check failed to read data source")
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	m.health.SetServingStatus(ServiceName, status)
	m.health.SetServingStatus("", status)
	return status
}

// Run checks immediately and then on every tick until ctx is cancelled
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
