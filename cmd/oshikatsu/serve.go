package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/luqmanhadi/oshikatsu/internal/config"
	grpcserver "github.com/luqmanhadi/oshikatsu/internal/grpc"
	"github.com/luqmanhadi/oshikatsu/internal/metrics"
	"github.com/luqmanhadi/oshikatsu/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("data_source", cfg.DataSource).
		Str("public_dir", cfg.PublicDir).
		Str("locale", cfg.Locale).
		Str("timezone", cfg.Timezone).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 3)

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()

	var stopGRPC func()
	if cfg.GRPC.Enabled {
		grpcServer, healthServer := grpcserver.NewGRPCServer()

		address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.GRPC.Port)
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("failed to create gRPC listener on %s: %w", address, err)
		}

		interval, err := time.ParseDuration(cfg.GRPC.CheckInterval)
		if err != nil {
			logger.Warn().Str("check_interval", cfg.GRPC.CheckInterval).Msg("Invalid health check interval, using default")
			interval = grpcserver.DefaultCheckInterval
		}
		go grpcserver.NewHealthMonitor(a.source, healthServer, interval).Run(monitorCtx)

		go func() {
			logger.Info().Str("address", address).Msg("Starting gRPC health server")
			if err := grpcServer.Serve(listener); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()

		stopGRPC = func() {
			healthServer.Shutdown()
			grpcServer.GracefulStop()
		}
	}

	httpServer := server.NewHTTPServer(cfg, server.New(cfg, a.assembler, a.source))
	go func() {
		logger.Info().Str("address", httpServer.Addr).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Start Prometheus metrics HTTP server
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("Server failed")
	}

	stopMonitor()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}
	if stopGRPC != nil {
		stopGRPC()
	}

	logger.Info().Msg("Server stopped gracefully")
	return runErr
}
