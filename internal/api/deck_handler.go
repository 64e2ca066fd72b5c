package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/medcards/internal/api/shared"
	"github.com/phrazzld/medcards/internal/export"
	"github.com/phrazzld/medcards/internal/platform/logger"
	"github.com/phrazzld/medcards/internal/service"
)

// Default paging for GET /api/decks.
const (
	defaultDeckLimit = 20
	maxDeckLimit     = 100
)

// DeckHandler serves saved decks.
type DeckHandler struct {
	service service.DeckService
	logger  *slog.Logger
}

// NewDeckHandler creates a DeckHandler.
func NewDeckHandler(svc service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		service: svc,
		logger:  logger.With("handler", "deck"),
	}
}

// Create handles POST /api/decks.
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SaveDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	deck, err := h.service.Save(r.Context(), req.Title, toFlashcards(req.Cards))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save deck")
		return
	}

	log.Info("deck saved", "deck_id", deck.ID.String(), "card_count", len(deck.Cards))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// List handles GET /api/decks?limit=&offset=.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := getQueryInt(r, "limit", defaultDeckLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	offset, err := getQueryInt(r, "offset", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if limit == 0 {
		limit = defaultDeckLimit
	}
	limit = min(limit, maxDeckLimit)

	decks, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{
		Decks:  decks,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /api/decks/{id}.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// Delete handles DELETE /api/decks/{id}.
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/decks/{id}/export?format=text|anki.
func (h *DeckHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	file, err := h.service.Export(r.Context(), id, format)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export deck")
		return
	}
	shared.RespondWithFile(w, r, file.Filename, file.ContentType, file.Body)
}
