// Package main is the entry point for the teapot service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/teapot-service/internal/adapters/http"
	"github.com/jsamuelsen/teapot-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/teapot-service/internal/adapters/quotes"
	"github.com/jsamuelsen/teapot-service/internal/app"
	"github.com/jsamuelsen/teapot-service/internal/platform/config"
	"github.com/jsamuelsen/teapot-service/internal/platform/logging"
	"github.com/jsamuelsen/teapot-service/internal/platform/telemetry"
	"github.com/jsamuelsen/teapot-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is reported in X-API-Version, /health and the docs page.
	Version = "v4.1.8"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load and validate configuration (fail fast)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	// 3. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Load the quotes; any problem here aborts startup
	store, err := quotes.Load(cfg.Quotes.File)
	if err != nil {
		return err
	}

	// 5. Metrics and health registries
	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering quotes health check: %w", err)
	}

	// 6. Application service and handlers
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Store:      store,
		Logger:     logger,
		Registerer: metrics,
	})

	logger.Info("quotes loaded",
		slog.String("path", store.Path()),
		slog.Int("count", quoteService.QuoteCount()),
	)

	teapotHandler := handlers.NewTeapotHandler(quoteService, Version)
	adminHandler := handlers.NewAdminHandler(healthRegistry, metrics, handlers.NewBuildInfo(Version, Commit, BuildTime))

	// 7. Public server
	server := http.New(cfg.Server.Addr(), &cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		Version:       Version,
		ServiceName:   cfg.Telemetry.ServiceName,
		LogRequests:   cfg.Log.Requests,
		TeapotHandler: teapotHandler,
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Teapot service %s listening on http://%s", Version, cfg.Server.Addr()))

	servers := []*http.Server{server}
	errChans := []<-chan error{serverErr}

	// 8. Admin server (probes and metrics), only when a port is configured
	if cfg.Admin.Enabled() {
		adminAddr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Admin.Port)

		admin := http.New(adminAddr, &cfg.Server, logger)
		http.SetupAdminRouter(admin.Engine(), logger, adminHandler)

		adminErr, err := admin.Start()
		if err != nil {
			_ = shutdownAll(ctx, logger, servers, cfg.Server.ShutdownTimeout)
			return fmt.Errorf("starting admin server: %w", err)
		}

		logger.Info("admin listener started", slog.String("addr", admin.Addr()))

		servers = append(servers, admin)
		errChans = append(errChans, adminErr)
	}

	// 9. Wait for shutdown signal
	return waitForShutdown(ctx, logger, servers, errChans, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal arrives or any server
// fails, then drains every server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	servers []*http.Server,
	errChans []<-chan error,
	shutdownTimeout time.Duration,
) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)

	for _, ch := range errChans {
		g.Go(func() error {
			select {
			case err, ok := <-ch:
				if ok {
					logger.Error("server failed", slog.Any("error", err))
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-gctx.Done():
				return nil
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		if ctx.Err() == nil && sigCtx.Err() != nil {
			logger.Info("received shutdown signal")
		}

		return shutdownAll(ctx, logger, servers, shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

// shutdownAll stops the servers in order, sharing one deadline.
func shutdownAll(ctx context.Context, logger *slog.Logger, servers []*http.Server, timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", timeout))

	var errs []error
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
