package grpc

import (
	"sync"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health check name reported for the oshi page
const ServiceName = "oshikatsu.v1.Page"

var (
	grpcServerMetrics         *grpcprom.ServerMetrics
	registerServerMetricsOnce sync.Once
)

// NewGRPCServer creates a gRPC server exposing the standard health and reflection
// services with Prometheus metrics. Both statuses start as NOT_SERVING until a
// HealthMonitor reports otherwise.
func NewGRPCServer() (*grpc.Server, *health.Server) {
	// Set up Prometheus gRPC server metrics once per process
	registerServerMetricsOnce.Do(func() {
		grpcServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(grpcServerMetrics)
	})

	srvMetrics := grpcServerMetrics

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(srvMetrics.StreamServerInterceptor()),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	// Register reflection service for tools like grpcurl
	reflection.Register(grpcServer)

	srvMetrics.InitializeMetrics(grpcServer)

	return grpcServer, healthServer
}
