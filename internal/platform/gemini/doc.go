// Package gemini provides an implementation of the generation.Completer
// interface backed by Google's Gemini API through the google.golang.org/genai
// client.
//
// It is an infrastructure adapter: the generation package sees only
// CompletionRequest and the text of the first candidate. Safety blocks are
// reported as generation.ErrContentBlocked and an answer without candidates
// as generation.ErrEmptyResponse.
package gemini
