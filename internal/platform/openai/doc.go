// Package openai provides an implementation of the generation.Completer
// interface backed by the OpenAI chat completions API
// (github.com/openai/openai-go/v3).
package openai
