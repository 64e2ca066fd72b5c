// Package main runs the medcards API server, which turns medical study text
// into question/answer flashcards.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phrazzld/medcards/internal/platform/postgres"
	"github.com/phrazzld/medcards/internal/redact"
)

func main() {
	migrate := flag.String("migrate", "", "run database migrations (up, down or status) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrate); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration and either runs a single migration command or
// serves HTTP until ctx is cancelled. Serving with a database configured
// applies pending migrations first.
func run(ctx context.Context, migrateCommand string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	if migrateCommand != "" {
		if !cfg.Database.PersistenceEnabled() {
			return errors.New("database.url must be set to run migrations")
		}
		return postgres.Migrate(ctx, cfg.Database.URL, migrateCommand, logger)
	}

	var pool *pgxpool.Pool
	if cfg.Database.PersistenceEnabled() {
		if err := postgres.Migrate(ctx, cfg.Database.URL, postgres.MigrateUp, logger); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		pool, err = setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("database not configured, deck persistence disabled")
	}

	app, err := newApplication(ctx, cfg, logger, pool)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
