package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nahiavl/GlobeTrek-app/internal/auth"
	"github.com/nahiavl/GlobeTrek-app/internal/config"
	"github.com/nahiavl/GlobeTrek-app/internal/httpapi"
	"github.com/nahiavl/GlobeTrek-app/internal/logging"
	"github.com/nahiavl/GlobeTrek-app/internal/social/google"
	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

func main() {
	logger := logging.NewDefault(slog.LevelInfo)
	ctx := context.Background()

	if err := run(ctx, logger); err != nil {
		logger.Error(ctx, "backend exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger) error {
	cfg, err := config.LoadBackend()
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.CreateSchema(ctx, db); err != nil {
		return err
	}

	users := store.NewUsersRepository(db)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenLifetime())
	authenticator := auth.NewAuthenticator(users, logger)
	provider := google.New(google.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		CallbackURL:  cfg.OAuthCallbackURL(),
	})

	server := httpapi.New(cfg, users, tokens, authenticator, provider, logger)
	app := server.Router()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()

	logger.Info(ctx, "backend listening", "addr", cfg.ListenAddr)

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
