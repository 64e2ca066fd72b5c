package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/medcards/internal/api/shared"
	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/export"
	"github.com/phrazzld/medcards/internal/service"
	"github.com/phrazzld/medcards/internal/store"
)

// Client-facing messages with fixed wording.
const (
	msgNoText           = "No text provided"
	msgGenerationFailed = "Failed to generate flashcards. Please try again with different text."
	msgInvalidRequest   = "Invalid request format"
	msgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Errors without a
// dedicated message get a generic one.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var credErr *service.CredentialError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrEmptyText):
		return msgNoText

	case errors.As(err, &credErr):
		return credErr.Error()

	case errors.Is(err, service.ErrNoFlashcards):
		return msgGenerationFailed

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, export.ErrUnknownFormat):
		return "Unsupported export format"

	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, service.ErrValidation):
		return "Invalid request parameters"

	case errors.Is(err, store.ErrDuplicate):
		return "Deck already exists"

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// fallback replaces the generic message for unrecognized errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == msgUnexpected && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	first := verrs[0]
	field := strings.ToLower(first.Field())
	if first.Tag() == "" {
		return fmt.Sprintf("Invalid %s", field)
	}
	return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(first.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
