package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nahiavl/GlobeTrek-app/internal/config"
	"github.com/nahiavl/GlobeTrek-app/internal/gateway"
	"github.com/nahiavl/GlobeTrek-app/internal/logging"
)

func main() {
	logger := logging.NewDefault(slog.LevelInfo)
	ctx := context.Background()

	if err := run(ctx, logger); err != nil {
		logger.Error(ctx, "gateway exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger) error {
	cfg, err := config.LoadGateway()
	if err != nil {
		return err
	}

	server := gateway.New(cfg, logger)
	app := server.Router()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	logger.Info(ctx, "gateway listening", "addr", cfg.ListenAddr,
		"backend", cfg.BackBaseURL, "api", cfg.APIBaseURL)

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errCh:
		return err
	case <-stop.Done():
		logger.Info(ctx, "shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
