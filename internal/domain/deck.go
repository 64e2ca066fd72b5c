package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDeckTitleLength is the maximum number of characters in a deck title.
const MaxDeckTitleLength = 200

// Deck is a named, saved set of flashcards.
type Deck struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Cards     []Flashcard `json:"cards"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewDeck creates a new Deck with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewDeck(title string, cards []Flashcard) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Cards:     cards,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks the deck and every card it holds.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if strings.TrimSpace(d.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyDeckTitle)
	}

	if utf8.RuneCountInString(d.Title) > MaxDeckTitleLength {
		return NewValidationError(
			"title",
			fmt.Sprintf("must be at most %d characters", MaxDeckTitleLength),
			ErrDeckTitleTooLong,
		)
	}

	if len(d.Cards) == 0 {
		return NewValidationError("cards", "cannot be empty", ErrEmptyDeck)
	}

	for i, card := range d.Cards {
		if err := card.Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("cards[%d]", i), err.Error(), err)
		}
	}

	return nil
}

// DeckSummary describes a saved deck without its cards.
type DeckSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}
