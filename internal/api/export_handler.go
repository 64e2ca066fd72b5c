package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/medcards/internal/api/shared"
	"github.com/phrazzld/medcards/internal/export"
	"github.com/phrazzld/medcards/internal/service"
)

const defaultExportName = "flashcards"

// ExportHandler renders unsaved cards as a download.
type ExportHandler struct {
	logger *slog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{logger: logger.With("handler", "export")}
}

// Export handles POST /api/export?format=text|anki.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ExportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	name := req.Title
	if name == "" {
		name = defaultExportName
	}

	file, err := service.RenderExport(name, toFlashcards(req.Cards), format)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export flashcards")
		return
	}
	shared.RespondWithFile(w, r, file.Filename, file.ContentType, file.Body)
}
