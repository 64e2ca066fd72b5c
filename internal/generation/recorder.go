package generation

import "time"

// Outcome classifies how a single chunk was handled.
type Outcome string

// Chunk outcomes reported to a Recorder.
const (
	OutcomeParsed        Outcome = "parsed"
	OutcomeSalvaged      Outcome = "salvaged"
	OutcomeEmptyResponse Outcome = "empty_response"
	OutcomeInvalidFormat Outcome = "invalid_format"
	OutcomeUnparseable   Outcome = "unparseable"
	OutcomeUpstreamError Outcome = "upstream_error"
)

// Recorder receives per-chunk processing results, typically for metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ChunkProcessed(outcome Outcome, duration time.Duration, cards int)
}

// NopRecorder discards everything.
type NopRecorder struct{}

// ChunkProcessed implements Recorder.
func (NopRecorder) ChunkProcessed(Outcome, time.Duration, int) {}
