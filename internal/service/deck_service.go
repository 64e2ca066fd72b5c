package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/export"
	"github.com/phrazzld/medcards/internal/platform/logger"
	"github.com/phrazzld/medcards/internal/store"
)

// ExportFile is a rendered export ready to be served as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RenderExport renders cards in format, naming the file after name.
func RenderExport(name string, cards []domain.Flashcard, format export.Format) (*ExportFile, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, cards); err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    format.Filename(name),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// DeckService manages saved decks.
type DeckService interface {
	// Save validates and stores a new deck.
	// Returns a domain validation error (matching domain.ErrValidation) for bad input.
	Save(ctx context.Context, title string, cards []domain.Flashcard) (*domain.Deck, error)

	// Get returns a deck with its cards. Returns store.ErrDeckNotFound if missing.
	Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns deck summaries, newest first.
	List(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error)

	// Delete removes a deck. Returns store.ErrDeckNotFound if missing.
	Delete(ctx context.Context, id uuid.UUID) error

	// Export renders a saved deck in format.
	Export(ctx context.Context, id uuid.UUID, format export.Format) (*ExportFile, error)
}

type deckServiceImpl struct {
	decks  store.DeckStore
	logger *slog.Logger
}

// NewDeckService creates a DeckService backed by decks.
func NewDeckService(decks store.DeckStore, logger *slog.Logger) (DeckService, error) {
	if decks == nil {
		return nil, errors.New("deck store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &deckServiceImpl{
		decks:  decks,
		logger: logger.With("component", "deck_service"),
	}, nil
}

// Save implements DeckService.
func (s *deckServiceImpl) Save(ctx context.Context, title string, cards []domain.Flashcard) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(title, cards)
	if err != nil {
		log.Debug("deck validation failed", "error", err)
		return nil, err
	}

	if err := s.decks.Create(ctx, deck); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		return nil, NewDeckServiceError("save", "failed to store deck", err)
	}
	return deck, nil
}

// Get implements DeckService.
func (s *deckServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrDeckNotFound
		}
		return nil, NewDeckServiceError("get", "failed to load deck", err)
	}
	return deck, nil
}

// List implements DeckService.
func (s *deckServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrValidation)
	}
	summaries, err := s.decks.List(ctx, limit, offset)
	if err != nil {
		return nil, NewDeckServiceError("list", "failed to list decks", err)
	}
	if summaries == nil {
		summaries = []domain.DeckSummary{}
	}
	return summaries, nil
}

// Delete implements DeckService.
func (s *deckServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.decks.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrDeckNotFound
		}
		return NewDeckServiceError("delete", "failed to delete deck", err)
	}
	log.Info("deck deleted", "deck_id", id.String())
	return nil
}

// Export implements DeckService.
func (s *deckServiceImpl) Export(ctx context.Context, id uuid.UUID, format export.Format) (*ExportFile, error) {
	deck, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := RenderExport(deck.Title, deck.Cards, format)
	if err != nil {
		return nil, NewDeckServiceError("export", "failed to render deck", err)
	}
	return file, nil
}
