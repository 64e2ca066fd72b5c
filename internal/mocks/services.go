package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/export"
	"github.com/phrazzld/medcards/internal/service"
)

// MockFlashcardService implements service.FlashcardService for testing.
type MockFlashcardService struct {
	GenerateFn func(ctx context.Context, text string) ([]domain.Flashcard, error)

	// Default response values
	Cards []domain.Flashcard
	Err   error

	GenerateCalls struct {
		mu    sync.Mutex
		Count int
		Texts []string
	}
}

var _ service.FlashcardService = (*MockFlashcardService)(nil)

// Generate implements service.FlashcardService.
func (m *MockFlashcardService) Generate(ctx context.Context, text string) ([]domain.Flashcard, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Texts = append(m.GenerateCalls.Texts, text)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, text)
	}
	return m.Cards, m.Err
}

// MockDeckService implements service.DeckService for testing.
// Unset functions return zero values.
type MockDeckService struct {
	SaveFn   func(ctx context.Context, title string, cards []domain.Flashcard) (*domain.Deck, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListFn   func(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
	ExportFn func(ctx context.Context, id uuid.UUID, format export.Format) (*service.ExportFile, error)
}

var _ service.DeckService = (*MockDeckService)(nil)

// Save implements service.DeckService.
func (m *MockDeckService) Save(ctx context.Context, title string, cards []domain.Flashcard) (*domain.Deck, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, title, cards)
	}
	return nil, nil
}

// Get implements service.DeckService.
func (m *MockDeckService) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, nil
}

// List implements service.DeckService.
func (m *MockDeckService) List(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return []domain.DeckSummary{}, nil
}

// Delete implements service.DeckService.
func (m *MockDeckService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// Export implements service.DeckService.
func (m *MockDeckService) Export(ctx context.Context, id uuid.UUID, format export.Format) (*service.ExportFile, error) {
	if m.ExportFn != nil {
		return m.ExportFn(ctx, id, format)
	}
	return nil, nil
}
