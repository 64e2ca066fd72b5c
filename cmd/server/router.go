package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/medcards/internal/api"
	apiMiddleware "github.com/phrazzld/medcards/internal/api/middleware"
)

// setupRouter registers middleware and routes. Deck routes are mounted only
// when persistence is enabled.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	flashcardHandler := api.NewFlashcardHandler(app.flashcardService, app.logger)
	exportHandler := api.NewExportHandler(app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", flashcardHandler.Generate)
		r.Post("/export", exportHandler.Export)

		if app.deckService != nil {
			deckHandler := api.NewDeckHandler(app.deckService, app.logger)
			r.Route("/decks", func(r chi.Router) {
				r.Post("/", deckHandler.Create)
				r.Get("/", deckHandler.List)
				r.Get("/{id}", deckHandler.Get)
				r.Delete("/{id}", deckHandler.Delete)
				r.Get("/{id}/export", deckHandler.Export)
			})
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", app.metrics.Handler())

	return r
}
