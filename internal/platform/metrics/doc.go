// Package metrics exposes Prometheus counters and histograms for flashcard
// generation on a private registry, served at /metrics by Handler.
package metrics
