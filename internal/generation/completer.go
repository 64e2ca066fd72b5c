package generation

import "context"

// CompletionRequest is a single chat-completion call: one system message,
// one user message and the sampling limits.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Completer is the boundary to an upstream chat-completion API.
// Implementations must be safe for concurrent use.
type Completer interface {
	// Complete sends the request and returns the text of the first
	// completion. An empty string with a nil error means the model answered
	// with no content.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
