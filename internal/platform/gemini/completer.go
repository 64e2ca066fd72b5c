package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/medcards/internal/generation"
)

// Options configure a Completer.
type Options struct {
	APIKey string

	// BaseURL overrides the Gemini API endpoint, mainly for tests.
	BaseURL string
}

// Completer sends CompletionRequests to the Gemini API.
type Completer struct {
	client *genai.Client
	logger *slog.Logger
}

// NewCompleter creates a Gemini-backed Completer.
func NewCompleter(ctx context.Context, opts Options, logger *slog.Logger) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrMissingAPIKey)
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Completer{
		client: client,
		logger: logger.With("provider", "gemini"),
	}, nil
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	temperature := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
		Temperature:     &temperature,
		MaxOutputTokens: int32(req.MaxTokens),
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserPrompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", generation.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		c.logger.WarnContext(ctx, "gemini blocked the response", "finish_reason", string(candidate.FinishReason))
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
