package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/medcards/internal/api"
	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/export"
	"github.com/phrazzld/medcards/internal/mocks"
	"github.com/phrazzld/medcards/internal/service"
	"github.com/phrazzld/medcards/internal/store"
)

func deckRouter(svc *mocks.MockDeckService) http.Handler {
	h := api.NewDeckHandler(svc, nil)
	r := chi.NewRouter()
	r.Route("/api/decks", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/export", h.Export)
	})
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDeckHandler_Create(t *testing.T) {
	var gotTitle string
	var gotCards []domain.Flashcard
	svc := &mocks.MockDeckService{
		SaveFn: func(ctx context.Context, title string, cards []domain.Flashcard) (*domain.Deck, error) {
			gotTitle, gotCards = title, cards
			return domain.NewDeck(title, cards)
		},
	}

	rec := serve(deckRouter(svc), http.MethodPost, "/api/decks",
		`{"title":"Cardiology","cards":[{"question":"What does ACE stand for?","answer":"Angiotensin-converting enzyme"}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cardiology", gotTitle)
	assert.Equal(t, []domain.Flashcard{{Question: "What does ACE stand for?", Answer: "Angiotensin-converting enzyme"}}, gotCards)

	var deck domain.Deck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deck))
	assert.NotEqual(t, uuid.Nil, deck.ID)
	assert.Len(t, deck.Cards, 1)
}

func TestDeckHandler_CreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		saveErr  error
		wantCode int
		wantMsg  string
	}{
		{name: "malformed", body: `{`, wantCode: http.StatusBadRequest, wantMsg: "Invalid request format"},
		{name: "no title", body: `{"cards":[{"question":"q","answer":"a"}]}`, wantCode: http.StatusBadRequest, wantMsg: "Invalid title: required field"},
		{name: "no cards", body: `{"title":"t","cards":[]}`, wantCode: http.StatusBadRequest, wantMsg: "Invalid cards: too short"},
		{name: "blank answer", body: `{"title":"t","cards":[{"question":"q","answer":""}]}`, wantCode: http.StatusBadRequest, wantMsg: "Invalid answer: required field"},
		{
			name:     "domain validation",
			body:     `{"title":"   ","cards":[{"question":"q","answer":"a"}]}`,
			saveErr:  domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyDeckTitle),
			wantCode: http.StatusBadRequest,
			wantMsg:  "title cannot be empty",
		},
		{
			name:     "store failure",
			body:     `{"title":"t","cards":[{"question":"q","answer":"a"}]}`,
			saveErr:  service.NewDeckServiceError("save", "failed to store deck", errors.New("conn refused")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Failed to save deck",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mocks.MockDeckService{
				SaveFn: func(context.Context, string, []domain.Flashcard) (*domain.Deck, error) {
					if tc.saveErr != nil {
						return nil, tc.saveErr
					}
					t.Fatal("Save should not be called")
					return nil, nil
				},
			}

			rec := serve(deckRouter(svc), http.MethodPost, "/api/decks", tc.body)

			assert.Equal(t, tc.wantCode, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body["error"])
		})
	}
}

func TestDeckHandler_List(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotLimit, gotOffset int
	svc := &mocks.MockDeckService{
		ListFn: func(_ context.Context, limit, offset int) ([]domain.DeckSummary, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.DeckSummary{{ID: uuid.New(), Title: "Renal", CardCount: 12, CreatedAt: created}}, nil
		},
	}
	router := deckRouter(svc)

	rec := serve(router, http.MethodGet, "/api/decks?limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, 10, gotOffset)

	var resp api.DeckListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Decks, 1)
	assert.Equal(t, 12, resp.Decks[0].CardCount)

	rec = serve(router, http.MethodGet, "/api/decks?limit=1000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, gotLimit)

	rec = serve(router, http.MethodGet, "/api/decks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)

	rec = serve(router, http.MethodGet, "/api/decks?offset=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "offset must be a non-negative integer")
}

func TestDeckHandler_Get(t *testing.T) {
	deck, err := domain.NewDeck("Pharmacology", []domain.Flashcard{{Question: "q", Answer: "a"}})
	require.NoError(t, err)

	svc := &mocks.MockDeckService{
		GetFn: func(_ context.Context, id uuid.UUID) (*domain.Deck, error) {
			if id == deck.ID {
				return deck, nil
			}
			return nil, store.ErrDeckNotFound
		},
	}
	router := deckRouter(svc)

	rec := serve(router, http.MethodGet, "/api/decks/"+deck.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Pharmacology"`)

	rec = serve(router, http.MethodGet, "/api/decks/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Deck not found"}`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/api/decks/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"id has invalid format"}`, rec.Body.String())
}

func TestDeckHandler_Delete(t *testing.T) {
	existing := uuid.New()
	svc := &mocks.MockDeckService{
		DeleteFn: func(_ context.Context, id uuid.UUID) error {
			if id == existing {
				return nil
			}
			return store.ErrDeckNotFound
		},
	}
	router := deckRouter(svc)

	rec := serve(router, http.MethodDelete, "/api/decks/"+existing.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(router, http.MethodDelete, "/api/decks/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeckHandler_Export(t *testing.T) {
	id := uuid.New()
	var gotFormat export.Format
	svc := &mocks.MockDeckService{
		ExportFn: func(_ context.Context, got uuid.UUID, format export.Format) (*service.ExportFile, error) {
			gotFormat = format
			return service.RenderExport("Endocrine", []domain.Flashcard{{Question: "q", Answer: "a"}}, format)
		},
	}
	router := deckRouter(svc)

	rec := serve(router, http.MethodGet, "/api/decks/"+id.String()+"/export?format=anki", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatAnki, gotFormat)
	assert.Equal(t, "text/tab-separated-values; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".tsv")
	assert.Contains(t, rec.Body.String(), "q\ta")

	rec = serve(router, http.MethodGet, "/api/decks/"+id.String()+"/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Unsupported export format"}`, rec.Body.String())
}
