package mocks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/medcards/internal/generation"
)

// MockCompleter implements generation.Completer for testing.
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, req generation.CompletionRequest) (string, error)

	// Default response values
	Response string
	Err      error

	// Delay is slept before answering; it makes overlapping calls observable.
	Delay time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32

	// Call tracking for verification
	CompleteCalls struct {
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Requests contains every request passed to Complete, in call order
		Requests []generation.CompletionRequest
	}
}

// Complete implements the generation.Completer interface
func (m *MockCompleter) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Requests = append(m.CompleteCalls.Requests, req)
	m.CompleteCalls.mu.Unlock()

	current := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		peak := m.maxInFlight.Load()
		if current <= peak || m.maxInFlight.CompareAndSwap(peak, current) {
			break
		}
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return m.Response, m.Err
}

// CallCount returns the number of Complete calls so far.
func (m *MockCompleter) CallCount() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// UserPrompts returns the user prompt of every call, in call order.
func (m *MockCompleter) UserPrompts() []string {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	prompts := make([]string, len(m.CompleteCalls.Requests))
	for i, req := range m.CompleteCalls.Requests {
		prompts[i] = req.UserPrompt
	}
	return prompts
}

// MaxConcurrent reports the highest number of simultaneous Complete calls seen.
func (m *MockCompleter) MaxConcurrent() int {
	return int(m.maxInFlight.Load())
}

// NewMockCompleterWithResponse creates a MockCompleter that always returns response
func NewMockCompleterWithResponse(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// NewMockCompleterWithError creates a MockCompleter that always fails with err
func NewMockCompleterWithError(err error) *MockCompleter {
	return &MockCompleter{Err: err}
}

// Reset resets the call tracking state
func (m *MockCompleter) Reset() {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()

	m.CompleteCalls.Count = 0
	m.CompleteCalls.Requests = nil
	m.maxInFlight.Store(0)
}
