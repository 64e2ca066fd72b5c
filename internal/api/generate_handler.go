package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/medcards/internal/api/shared"
	"github.com/phrazzld/medcards/internal/platform/logger"
	"github.com/phrazzld/medcards/internal/redact"
	"github.com/phrazzld/medcards/internal/service"
)

// FlashcardHandler serves flashcard generation.
type FlashcardHandler struct {
	service service.FlashcardService
	logger  *slog.Logger
}

// NewFlashcardHandler creates a FlashcardHandler.
func NewFlashcardHandler(svc service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		service: svc,
		logger:  logger.With("handler", "flashcard"),
	}
}

// Generate handles POST /api/generate. It responds with the deduplicated
// card array on success.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	cards, err := h.service.Generate(r.Context(), req.Text)
	if err != nil {
		status, message := generateErrorResponse(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	log.Info("flashcards generated",
		"card_count", len(cards),
		"text_length", len(req.Text))
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// generateErrorResponse picks the status and client message for a failed
// generation. Unclassified failures expose their redacted message.
func generateErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyText):
		return http.StatusBadRequest, msgNoText
	case errors.Is(err, service.ErrMissingCredential),
		errors.Is(err, service.ErrNoFlashcards):
		return http.StatusInternalServerError, GetSafeErrorMessage(err)
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, GetSafeErrorMessage(err)
	default:
		return http.StatusInternalServerError, redact.Error(err)
	}
}
