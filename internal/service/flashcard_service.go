package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/medcards/internal/chunking"
	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/generation"
	"github.com/phrazzld/medcards/internal/platform/logger"
)

// Results reported to a RequestRecorder, one per Generate call.
const (
	ResultOK            = "ok"
	ResultInvalid       = "invalid"
	ResultMisconfigured = "misconfigured"
	ResultEmpty         = "empty"
	ResultError         = "error"
)

// RequestRecorder counts generation requests by result.
type RequestRecorder interface {
	GenerateRequest(result string)
}

type nopRequestRecorder struct{}

func (nopRequestRecorder) GenerateRequest(string) {}

// ChunkRunner generates cards for an ordered list of chunks.
// *generation.Orchestrator implements it.
type ChunkRunner interface {
	Run(ctx context.Context, chunks []string) []domain.Flashcard
}

var _ ChunkRunner = (*generation.Orchestrator)(nil)

// FlashcardService turns source text into flashcards.
type FlashcardService interface {
	// Generate chunks text, generates cards for every chunk and returns the
	// deduplicated result.
	//
	// Returns ErrEmptyText for empty text, a CredentialError when the
	// provider has no API key, and ErrNoFlashcards when nothing was produced.
	Generate(ctx context.Context, text string) ([]domain.Flashcard, error)
}

// FlashcardServiceConfig wires a FlashcardService.
type FlashcardServiceConfig struct {
	// Runner is nil when the provider credential is missing; every Generate
	// call then fails with a CredentialError.
	Runner ChunkRunner

	// Provider is the display name used in credential errors, e.g. "OpenAI".
	Provider string

	// MaxChunkLength bounds chunk size; zero selects the chunker default.
	MaxChunkLength int

	Recorder RequestRecorder
	Logger   *slog.Logger
}

type flashcardServiceImpl struct {
	runner         ChunkRunner
	provider       string
	maxChunkLength int
	recorder       RequestRecorder
	logger         *slog.Logger
}

// NewFlashcardService creates a FlashcardService.
func NewFlashcardService(cfg FlashcardServiceConfig) (FlashcardService, error) {
	if cfg.Provider == "" {
		return nil, errors.New("provider name cannot be empty")
	}
	if cfg.MaxChunkLength <= 0 {
		cfg.MaxChunkLength = chunking.DefaultMaxChunkLength
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRequestRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &flashcardServiceImpl{
		runner:         cfg.Runner,
		provider:       cfg.Provider,
		maxChunkLength: cfg.MaxChunkLength,
		recorder:       cfg.Recorder,
		logger:         cfg.Logger.With("component", "flashcard_service"),
	}, nil
}

// Generate implements FlashcardService.
func (s *flashcardServiceImpl) Generate(ctx context.Context, text string) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if text == "" {
		s.recorder.GenerateRequest(ResultInvalid)
		return nil, ErrEmptyText
	}

	if s.runner == nil {
		log.Error("language model API key is not configured", "provider", s.provider)
		s.recorder.GenerateRequest(ResultMisconfigured)
		return nil, &CredentialError{Provider: s.provider}
	}

	chunks := chunking.Split(text, s.maxChunkLength)
	log.Info("generating flashcards",
		"text_length", len(text),
		"chunks", len(chunks))

	cards := s.runner.Run(ctx, chunks)

	if len(cards) == 0 {
		if err := ctx.Err(); err != nil {
			s.recorder.GenerateRequest(ResultError)
			return nil, fmt.Errorf("flashcard generation interrupted: %w", err)
		}
		log.Warn("no flashcards generated", "chunks", len(chunks))
		s.recorder.GenerateRequest(ResultEmpty)
		return nil, ErrNoFlashcards
	}

	unique := generation.Dedupe(cards)
	log.Info("flashcards generated",
		"generated", len(cards),
		"unique", len(unique))
	s.recorder.GenerateRequest(ResultOK)
	return unique, nil
}
