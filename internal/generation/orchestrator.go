package generation

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/platform/logger"
)

// DefaultBatchSize is the number of chunks processed concurrently.
const DefaultBatchSize = 3

// ChunkProcessor produces the cards for one chunk. *Processor implements it.
type ChunkProcessor interface {
	Process(ctx context.Context, chunk string, index int) []domain.Flashcard
}

// Orchestrator runs a ChunkProcessor over a list of chunks in sequential
// batches, with the members of each batch processed concurrently.
type Orchestrator struct {
	processor ChunkProcessor
	batchSize int
	logger    *slog.Logger
}

// NewOrchestrator returns an Orchestrator. A non-positive batchSize selects
// DefaultBatchSize.
func NewOrchestrator(processor ChunkProcessor, batchSize int, log *slog.Logger) (*Orchestrator, error) {
	if processor == nil {
		return nil, fmt.Errorf("%w: processor cannot be nil", ErrInvalidConfig)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		processor: processor,
		batchSize: batchSize,
		logger:    log.With("component", "orchestrator"),
	}, nil
}

// BatchSize reports the configured concurrency bound.
func (o *Orchestrator) BatchSize() int {
	return o.batchSize
}

// Run processes chunks and returns every card produced, ordered by chunk
// index. At most BatchSize chunks are in flight at once and batch k+1 starts
// only after every member of batch k has finished. If ctx is cancelled
// between batches the remaining chunks are skipped.
func (o *Orchestrator) Run(ctx context.Context, chunks []string) []domain.Flashcard {
	log := logger.FromContextOrDefault(ctx, o.logger)
	results := make([][]domain.Flashcard, len(chunks))

	for start := 0; start < len(chunks); start += o.batchSize {
		if err := ctx.Err(); err != nil {
			log.Warn("generation cancelled, skipping remaining chunks",
				"processed", start,
				"total", len(chunks),
				"error", err)
			break
		}

		end := min(start+o.batchSize, len(chunks))
		log.Debug("processing batch", "first_chunk", start, "last_chunk", end-1)

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = o.processor.Process(ctx, chunks[i], i)
				return nil
			})
		}
		// members never return errors
		_ = g.Wait()
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	cards := make([]domain.Flashcard, 0, total)
	for _, r := range results {
		cards = append(cards, r...)
	}
	return cards
}
