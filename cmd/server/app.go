package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phrazzld/medcards/internal/config"
	"github.com/phrazzld/medcards/internal/generation"
	"github.com/phrazzld/medcards/internal/platform/metrics"
	"github.com/phrazzld/medcards/internal/platform/postgres"
	"github.com/phrazzld/medcards/internal/service"
	"github.com/phrazzld/medcards/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool

	metrics *metrics.Recorder

	flashcardService service.FlashcardService

	// deckService is nil when no database is configured.
	deckService service.DeckService
}

// newApplication builds the provider client and deck store from cfg and
// wires them into the services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*application, error) {
	completer, err := newCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model client: %w", err)
	}

	var decks store.DeckStore
	if pool != nil {
		decks = postgres.NewPostgresDeckStore(pool, logger)
	}

	app, err := assembleApplication(cfg, logger, completer, decks)
	if err != nil {
		return nil, err
	}
	app.pool = pool
	return app, nil
}

// assembleApplication wires the generation pipeline and services around an
// already constructed completer and deck store. Either may be nil.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	completer generation.Completer,
	decks store.DeckStore,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	var runner service.ChunkRunner
	if completer != nil {
		settings := generation.Settings{
			Model:          cfg.LLM.Model,
			Temperature:    cfg.LLM.Temperature,
			MaxTokens:      cfg.LLM.MaxTokens,
			RequestTimeout: cfg.LLM.RequestTimeout(),
		}
		processor, err := generation.NewProcessor(completer, settings, app.metrics, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create chunk processor: %w", err)
		}
		orchestrator, err := generation.NewOrchestrator(processor, cfg.Generation.BatchSize, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create orchestrator: %w", err)
		}
		runner = orchestrator
		logger.Info("generation pipeline initialized",
			"model", settings.Model,
			"batch_size", orchestrator.BatchSize())
	}

	var err error
	app.flashcardService, err = service.NewFlashcardService(service.FlashcardServiceConfig{
		Runner:         runner,
		Provider:       providerDisplayName(cfg.LLM.Provider),
		MaxChunkLength: cfg.Generation.MaxChunkLength,
		Recorder:       app.metrics,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	if decks != nil {
		app.deckService, err = service.NewDeckService(decks, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create deck service: %w", err)
		}
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
	}
	app.logger.Info("application shutdown completed")
}
