package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/eshaffer321/recurscan/internal/api"
	"github.com/eshaffer321/recurscan/internal/application/service"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// RunServe runs the API server until ctx is done or the process receives
// SIGINT or SIGTERM. A server that fails to start returns its error.
func RunServe(ctx context.Context, cfg *config.Config, opts ServeOptions) error {
	logger := newLogger(cfg, "api", opts.Verbose)

	// Initialize storage
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	apiCfg := api.ConfigFrom(cfg.API)
	if opts.Port > 0 {
		apiCfg.Port = opts.Port
	}

	svc := service.NewFeatureService(cfg, store, logger)
	server := api.NewServer(apiCfg, store, svc, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("received shutdown signal")

	// Handle graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	if err := <-errCh; err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
