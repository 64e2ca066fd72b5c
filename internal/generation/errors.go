package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidResponse is returned when the LLM response cannot be parsed as JSON
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrNotArray is returned when the LLM response is valid JSON but not an array
	ErrNotArray = errors.New("language model response is not a JSON array")

	// ErrEmptyResponse is returned by completers when the model produced no text
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when a completer or processor configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrMissingAPIKey is returned when no upstream credential is configured
	ErrMissingAPIKey = errors.New("language model API key is not configured")
)
