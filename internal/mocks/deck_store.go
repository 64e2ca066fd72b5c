package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/store"
)

// MockDeckStore implements store.DeckStore for testing.
// Without custom functions it behaves as an in-memory store.
type MockDeckStore struct {
	CreateFn  func(ctx context.Context, deck *domain.Deck) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListFn    func(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error)
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	mu    sync.Mutex
	decks map[uuid.UUID]*domain.Deck
	order []uuid.UUID

	// Call tracking for verification
	CreateCalls int
	DeleteCalls int
}

var _ store.DeckStore = (*MockDeckStore)(nil)

// NewMockDeckStore creates an empty in-memory MockDeckStore.
func NewMockDeckStore() *MockDeckStore {
	return &MockDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

// Create implements store.DeckStore.
func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, deck)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decks == nil {
		m.decks = make(map[uuid.UUID]*domain.Deck)
	}
	if _, ok := m.decks[deck.ID]; ok {
		return store.ErrDuplicate
	}
	stored := *deck
	stored.Cards = append([]domain.Flashcard(nil), deck.Cards...)
	m.decks[deck.ID] = &stored
	m.order = append(m.order, deck.ID)
	return nil
}

// GetByID implements store.DeckStore.
func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	deck, ok := m.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	copied := *deck
	return &copied, nil
}

// List implements store.DeckStore. Newest-first means reverse insertion order here.
func (m *MockDeckStore) List(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	summaries := []domain.DeckSummary{}
	for i := len(m.order) - 1; i >= 0; i-- {
		deck := m.decks[m.order[i]]
		summaries = append(summaries, domain.DeckSummary{
			ID:        deck.ID,
			Title:     deck.Title,
			CardCount: len(deck.Cards),
			CreatedAt: deck.CreatedAt,
		})
	}
	if offset >= len(summaries) {
		return []domain.DeckSummary{}, nil
	}
	summaries = summaries[offset:]
	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Delete implements store.DeckStore.
func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(m.decks, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
