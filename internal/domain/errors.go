package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyQuestion is returned when a flashcard has no question text.
	ErrEmptyQuestion = errors.New("flashcard question cannot be empty")

	// ErrEmptyAnswer is returned when a flashcard has no answer text.
	ErrEmptyAnswer = errors.New("flashcard answer cannot be empty")

	// ErrEmptyDeckTitle is returned when a deck has no title.
	ErrEmptyDeckTitle = errors.New("deck title cannot be empty")

	// ErrDeckTitleTooLong is returned when a deck title exceeds MaxDeckTitleLength.
	ErrDeckTitleTooLong = errors.New("deck title is too long")

	// ErrEmptyDeck is returned when a deck contains no flashcards.
	ErrEmptyDeck = errors.New("deck must contain at least one flashcard")
)

// ValidationError describes which field of an entity or request failed
// validation. It wraps one of the sentinel errors above so callers can still
// use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every ValidationError as an ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil, ErrValidation is wrapped.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
