package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Synnly/gestion-projet-m2-sub003/internal/app"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/config"
)

// masterKeyRotator installs a new master key in a running engine.
type masterKeyRotator interface {
	RotateMasterKey(ctx context.Context, encoded string) error
}

// RunServer starts the API and metrics servers and blocks until SIGINT or SIGTERM.
// SIGHUP re-reads the configuration and rotates the envelope master key in place.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("env", cfg.AppEnv),
		slog.String("storage_provider", cfg.StorageProvider))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := container.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server, err := container.HTTPServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()
	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	var runErr error
loop:
	for {
		select {
		case <-hup:
			reloadMasterKey(ctx, container, config.Reload, logger)
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			break loop
		case err := <-serverErr:
			logger.Error("server error, initiating shutdown", slog.Any("error", err))
			runErr = err
			break loop
		}
	}

	// Drain servers before the deferred container shutdown closes the stores.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	errs := []error{runErr}
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// reloadMasterKey rotates to the MASTER_KEY found by load. Failures are logged
// and the current key stays active.
func reloadMasterKey(
	ctx context.Context,
	rotator masterKeyRotator,
	load func() *config.Config,
	logger *slog.Logger,
) {
	logger.Info("reload signal received, rotating master key")

	cfg := load()
	if cfg.MasterKey == "" {
		logger.Warn("master key rotation skipped: MASTER_KEY is not set")
		return
	}

	if err := rotator.RotateMasterKey(ctx, cfg.MasterKey); err != nil {
		logger.Error("master key rotation failed, keeping current key", slog.Any("error", err))
		return
	}
	logger.Info("master key rotation completed")
}
