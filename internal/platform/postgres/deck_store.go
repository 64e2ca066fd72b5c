package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/platform/logger"
	"github.com/phrazzld/medcards/internal/store"
)

// Default and maximum page sizes for List.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DB, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

const insertDeckQuery = `
		INSERT INTO decks (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

const insertCardQuery = `
		INSERT INTO deck_cards (deck_id, position, question, answer)
		VALUES ($1, $2, $3, $4)
	`

// Create implements store.DeckStore.Create.
// The deck row and its cards are written in one transaction.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertDeckQuery,
			deck.ID, deck.Title, deck.CreatedAt, deck.UpdatedAt); err != nil {
			return MapError(err)
		}
		for i, card := range deck.Cards {
			if _, err := tx.Exec(ctx, insertCardQuery,
				deck.ID, i, card.Question, card.Answer); err != nil {
				return MapError(err)
			}
		}
		return nil
	})
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("deck id already exists", slog.String("deck_id", deck.ID.String()))
			return err
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "create", "failed to insert deck", err)
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", len(deck.Cards)))
	return nil
}

// GetByID implements store.DeckStore.GetByID.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving deck by ID", slog.String("deck_id", id.String()))

	deck := &domain.Deck{}
	err := s.db.QueryRow(ctx, `
		SELECT id, title, created_at, updated_at
		FROM decks
		WHERE id = $1
	`, id).Scan(&deck.ID, &deck.Title, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to query deck", MapError(err))
	}

	rows, err := s.db.Query(ctx, `
		SELECT question, answer
		FROM deck_cards
		WHERE deck_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		log.Error("failed to query deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to query deck cards", MapError(err))
	}

	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Flashcard, error) {
		var card domain.Flashcard
		err := row.Scan(&card.Question, &card.Answer)
		return card, err
	})
	if err != nil {
		log.Error("failed to scan deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to scan deck cards", MapError(err))
	}
	deck.Cards = cards

	return deck, nil
}

// List implements store.DeckStore.List.
// Limit is clamped to [1, MaxListLimit]; a non-positive limit selects
// DefaultListLimit. A negative offset is treated as zero.
func (s *PostgresDeckStore) List(ctx context.Context, limit, offset int) ([]domain.DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)

	rows, err := s.db.Query(ctx, `
		SELECT d.id, d.title, COUNT(c.position), d.created_at
		FROM decks d
		LEFT JOIN deck_cards c ON c.deck_id = d.id
		GROUP BY d.id, d.title, d.created_at
		ORDER BY d.created_at DESC, d.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "failed to query decks", MapError(err))
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DeckSummary, error) {
		var summary domain.DeckSummary
		err := row.Scan(&summary.ID, &summary.Title, &summary.CardCount, &summary.CreatedAt)
		return summary, err
	})
	if err != nil {
		log.Error("failed to scan deck summaries", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "failed to scan deck summaries", MapError(err))
	}

	return summaries, nil
}

// Delete implements store.DeckStore.Delete.
// Cards are removed by the ON DELETE CASCADE constraint.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.db.Exec(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return store.NewStoreError("deck", "delete", "failed to delete deck", MapError(err))
	}

	if CheckRowsAffected(tag, "deck") != nil {
		return store.ErrDeckNotFound
	}

	log.Info("deck deleted successfully", slog.String("deck_id", id.String()))
	return nil
}
