package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/retireplan-backend/internal/adapter/grpc"
	"github.com/simaogato/retireplan-backend/internal/adapter/repository"
	"github.com/simaogato/retireplan-backend/internal/adapter/rest"
	"github.com/simaogato/retireplan-backend/internal/config"
	"github.com/simaogato/retireplan-backend/internal/logging"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
	"github.com/simaogato/retireplan-backend/internal/usecase/planner"
)

const (
	storeAttempts = 5
	storeBackoff  = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 1. Setup storage
	backend, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	// 2. Initialize services
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	planService := planner.NewPlanService(backend.Repositories, logger, metrics.New(registry))

	// 3. Start servers
	g, gctx := errgroup.WithContext(ctx)

	var httpServer *http.Server
	if cfg.HTTP.Addr != "" {
		httpServer = &http.Server{
			Addr: cfg.HTTP.Addr,
			Handler: rest.NewRouter(rest.Config{
				Plans:          planService,
				Logger:         logger,
				APIToken:       cfg.APIToken,
				AllowedOrigins: cfg.HTTP.AllowedOrigins,
				Health:         backend.Health,
				Gatherer:       registry,
				RequestTimeout: cfg.HTTP.RequestTimeout,
			}),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}
		g.Go(func() error {
			logger.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to serve HTTP: %w", err)
			}
			return nil
		})
	}

	var grpcServer *grpclib.Server
	if cfg.GRPC.Addr != "" {
		grpcServer = grpclib.NewServer(
			grpclib.ChainUnaryInterceptor(
				grpcadapter.AuthInterceptor(cfg.APIToken),
				grpcadapter.PlanKeyInterceptor(),
			),
		)
		grpcadapter.RegisterRetirementServiceServer(grpcServer, grpcadapter.NewServer(planService, logger))
		if cfg.GRPC.Reflection {
			reflection.Register(grpcServer)
		}

		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.GRPC.Addr, err)
		}
		g.Go(func() error {
			logger.Info("gRPC server listening", "addr", cfg.GRPC.Addr)
			if err := grpcServer.Serve(lis); err != nil {
				return fmt.Errorf("failed to serve gRPC: %w", err)
			}
			return nil
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if grpcServer != nil {
			grpcServer.GracefulStop()
			logger.Info("gRPC server stopped")
		}
		if httpServer != nil {
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down HTTP: %w", err)
			}
			logger.Info("HTTP server stopped")
		}
		return nil
	})

	return g.Wait()
}

// openStore retries while the database container is still starting
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*repository.Backend, error) {
	var lastErr error
	for attempt := 1; attempt <= storeAttempts; attempt++ {
		backend, err := repository.Open(ctx, cfg, logger)
		if err == nil {
			logger.Info("store ready", "driver", backend.Driver)
			return backend, nil
		}
		lastErr = err
		logger.Warn("store not ready", "driver", cfg.Driver, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(storeBackoff):
		}
	}
	return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, lastErr)
}
