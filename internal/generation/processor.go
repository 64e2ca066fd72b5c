package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/medcards/internal/chunking"
	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/platform/logger"
	"github.com/phrazzld/medcards/internal/redact"
)

// Settings control a single upstream call.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int

	// RequestTimeout bounds one Complete call. Zero means no extra deadline
	// beyond the caller's context.
	RequestTimeout time.Duration
}

// DefaultSettings returns the sampling parameters used for card generation.
func DefaultSettings(model string) Settings {
	return Settings{
		Model:       model,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidConfig, s.MaxTokens)
	}
	if s.Temperature < 0 {
		return fmt.Errorf("%w: temperature must not be negative", ErrInvalidConfig)
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Processor generates the flashcards for one chunk with one upstream call.
type Processor struct {
	completer Completer
	settings  Settings
	recorder  Recorder
	logger    *slog.Logger
}

// NewProcessor validates its dependencies and returns a Processor.
// A nil recorder is replaced by NopRecorder and a nil logger by slog.Default().
func NewProcessor(
	completer Completer,
	settings Settings,
	recorder Recorder,
	log *slog.Logger,
) (*Processor, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		completer: completer,
		settings:  settings,
		recorder:  recorder,
		logger:    log.With("component", "chunk_processor"),
	}, nil
}

// Process returns the cards for chunk. It never fails: upstream errors and
// unusable responses are logged and yield an empty slice.
func (p *Processor) Process(ctx context.Context, chunk string, index int) []domain.Flashcard {
	log := logger.FromContextOrDefault(ctx, p.logger).With("chunk_index", index)
	start := time.Now()
	isComplex := chunking.IsComplex(chunk)

	cards, outcome := p.process(ctx, log, chunk, isComplex)

	p.recorder.ChunkProcessed(outcome, time.Since(start), len(cards))
	log.Debug("chunk processed",
		"outcome", string(outcome),
		"complex", isComplex,
		"cards", len(cards),
		"duration_ms", time.Since(start).Milliseconds())
	return cards
}

func (p *Processor) process(ctx context.Context, log *slog.Logger, chunk string, isComplex bool) ([]domain.Flashcard, Outcome) {
	callCtx := ctx
	if p.settings.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.settings.RequestTimeout)
		defer cancel()
	}

	raw, err := p.completer.Complete(callCtx, CompletionRequest{
		Model:        ModelFor(p.settings.Model, isComplex),
		SystemPrompt: SystemPrompt,
		UserPrompt:   UserPrompt(chunk),
		Temperature:  p.settings.Temperature,
		MaxTokens:    p.settings.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyResponse) {
			log.Warn("language model returned no content")
			return nil, OutcomeEmptyResponse
		}
		log.Error("chunk generation failed",
			"error", redact.Error(err),
			"complex", isComplex)
		return nil, OutcomeUpstreamError
	}

	if strings.TrimSpace(raw) == "" {
		log.Warn("language model returned no content")
		return nil, OutcomeEmptyResponse
	}

	cards, err := ParseFlashcards(raw)
	switch {
	case err == nil:
		return cards, OutcomeParsed
	case errors.Is(err, ErrNotArray):
		log.Warn("language model response is not a JSON array", "error", err)
		return nil, OutcomeInvalidFormat
	}

	log.Warn("failed to parse language model response, attempting salvage", "error", err)
	salvaged := Salvage(raw)
	if len(salvaged) == 0 {
		log.Error("no flashcards could be salvaged from response",
			"response_length", len(raw))
		return nil, OutcomeUnparseable
	}
	log.Info("salvaged flashcards from malformed response", "cards", len(salvaged))
	return salvaged, OutcomeSalvaged
}
