package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/phrazzld/medcards/internal/generation"
)

// Options configure a Completer.
type Options struct {
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for an OpenAI-compatible proxy.
	BaseURL string
}

// Completer sends CompletionRequests to the chat completions endpoint.
type Completer struct {
	client openai.Client
	logger *slog.Logger
}

// NewCompleter creates an OpenAI-backed Completer. SDK-level retries are
// disabled; a failed chunk is not retried.
func NewCompleter(opts Options, logger *slog.Logger) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrMissingAPIKey)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &Completer{
		client: openai.NewClient(reqOpts...),
		logger: logger.With("provider", "openai"),
	}, nil
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai chat completion: status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", generation.ErrEmptyResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		c.logger.WarnContext(ctx, "openai filtered the response", "finish_reason", choice.FinishReason)
		return "", generation.ErrContentBlocked
	}
	return choice.Message.Content, nil
}
