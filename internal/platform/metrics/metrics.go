package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/medcards/internal/generation"
)

const namespace = "medcards"

// Recorder collects generation metrics. It implements generation.Recorder
// and the request recorder used by the flashcard service.
type Recorder struct {
	registry *prometheus.Registry

	chunksProcessed  *prometheus.CounterVec
	flashcards       prometheus.Counter
	chunkDuration    prometheus.Histogram
	generateRequests *prometheus.CounterVec
}

// New creates a Recorder with its own registry. Go runtime and process
// collectors are registered alongside the application metrics.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		chunksProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_processed_total",
			Help:      "Chunks sent to the language model, by outcome.",
		}, []string{"outcome"}),
		flashcards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flashcards_generated_total",
			Help:      "Flashcards produced by chunk processing, before deduplication.",
		}),
		chunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_duration_seconds",
			Help:      "Time spent processing one chunk, including the upstream call.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		generateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generate_requests_total",
			Help:      "Flashcard generation requests, by result.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.chunksProcessed,
		r.flashcards,
		r.chunkDuration,
		r.generateRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

var _ generation.Recorder = (*Recorder)(nil)

// ChunkProcessed implements generation.Recorder.
func (r *Recorder) ChunkProcessed(outcome generation.Outcome, duration time.Duration, cards int) {
	r.chunksProcessed.WithLabelValues(string(outcome)).Inc()
	r.chunkDuration.Observe(duration.Seconds())
	if cards > 0 {
		r.flashcards.Add(float64(cards))
	}
}

// GenerateRequest counts one generation request by result.
func (r *Recorder) GenerateRequest(result string) {
	r.generateRequests.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
