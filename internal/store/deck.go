package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/medcards/internal/domain"
)

// DeckStore persists saved flashcard decks.
type DeckStore interface {
	// Create saves a new deck together with its cards.
	// Returns store.ErrInvalidEntity if the deck fails validation and
	// store.ErrDuplicate if a deck with the same ID exists.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck and its cards in their saved order.
	// Returns store.ErrDeckNotFound if no such deck exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns deck summaries, newest first.
	List(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error)

	// Delete removes a deck and its cards.
	// Returns store.ErrDeckNotFound if no such deck exists.
	Delete(ctx context.Context, id uuid.UUID) error
}
