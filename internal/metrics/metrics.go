// Package metrics registers the Prometheus collectors for vault scans.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vaultgraph_scans_total",
		Help: "Total vault scans by outcome",
	}, []string{"outcome"})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vaultgraph_scan_duration_seconds",
		Help:    "Time spent walking and reading a vault",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	scanNotes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vaultgraph_scan_notes",
		Help:    "Number of notes read per scan",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
	})

	readFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vaultgraph_scan_read_failures_total",
		Help: "Notes skipped because they could not be read",
	})
)

// Scan outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ObserveScan records one finished scan.
func ObserveScan(outcome string, elapsed time.Duration, notes int) {
	scansTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		scanDuration.Observe(elapsed.Seconds())
		scanNotes.Observe(float64(notes))
	}
}

// ReadFailed records a note skipped during a scan.
func ReadFailed() {
	readFailures.Inc()
}
