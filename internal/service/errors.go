package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is and the API layer maps them to
// HTTP status codes.
var (
	// ErrValidation indicates the request itself is unusable.
	// API layer should map this to HTTP 400 Bad Request.
	ErrValidation = errors.New("invalid request")

	// ErrEmptyText is returned when no source text was submitted.
	ErrEmptyText = fmt.Errorf("%w: no text provided", ErrValidation)

	// ErrMissingCredential indicates the upstream language model has no API key.
	// API layer should map this to HTTP 500 with the credential message.
	ErrMissingCredential = errors.New("language model credential is not configured")

	// ErrNoFlashcards is returned when generation finished with zero cards.
	// API layer should map this to HTTP 500.
	ErrNoFlashcards = errors.New("no flashcards could be generated")
)

// CredentialError names the provider whose API key is missing.
// It matches ErrMissingCredential under errors.Is.
type CredentialError struct {
	Provider string
}

// Error implements the error interface with the operator-facing message.
func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s API key is not configured. Please check your environment variables.", e.Provider)
}

// Is reports whether target is ErrMissingCredential.
func (e *CredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// ServiceError is a custom error type for unexpected service failures.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a ServiceError for the deck service.
func NewDeckServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   "deck",
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
