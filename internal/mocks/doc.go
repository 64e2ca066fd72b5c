// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for custom behavior, default return values
// and mutex-guarded call tracking, so it can be shared by concurrent
// goroutines in a test:
//
//	completer := &mocks.MockCompleter{
//	    CompleteFn: func(ctx context.Context, req generation.CompletionRequest) (string, error) {
//	        return `[{"question":"Q","answer":"A"}]`, nil
//	    },
//	}
package mocks
