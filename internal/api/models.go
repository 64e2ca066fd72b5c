package api

import (
	"github.com/phrazzld/medcards/internal/domain"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Text string `json:"text"`
}

// CardPayload is a flashcard as submitted by a client.
type CardPayload struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// SaveDeckRequest is the body of POST /api/decks.
type SaveDeckRequest struct {
	Title string        `json:"title" validate:"required,max=200"`
	Cards []CardPayload `json:"cards" validate:"required,min=1,dive"`
}

// ExportRequest is the body of POST /api/export.
type ExportRequest struct {
	Title string        `json:"title" validate:"max=200"`
	Cards []CardPayload `json:"cards" validate:"required,min=1,dive"`
}

// DeckListResponse is the body of GET /api/decks.
type DeckListResponse struct {
	Decks  []domain.DeckSummary `json:"decks"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func toFlashcards(payload []CardPayload) []domain.Flashcard {
	cards := make([]domain.Flashcard, len(payload))
	for i, p := range payload {
		cards[i] = domain.Flashcard{Question: p.Question, Answer: p.Answer}
	}
	return cards
}
