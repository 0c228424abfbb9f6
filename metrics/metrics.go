// Package metrics holds the Prometheus collectors for the story server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transitions counts navigation requests by direction and outcome (applied, noop, busy).
	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scrolly",
			Name:      "transitions_total",
			Help:      "Navigation requests by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	// PaintDuration measures how long a scene takes to paint, staggered reveals included.
	PaintDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scrolly",
			Name:      "paint_duration_seconds",
			Help:      "Duration of scene paints in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"scene"},
	)

	LoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scrolly",
			Name:      "load_failures_total",
			Help:      "Dataset sources that failed to load",
		},
		[]string{"source"},
	)

	LoadedRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "scrolly",
			Name:      "loaded_rows",
			Help:      "Rows kept per dataset after parsing",
		},
		[]string{"source"},
	)

	SkippedRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "scrolly",
			Name:      "skipped_rows",
			Help:      "Malformed rows dropped per dataset",
		},
		[]string{"source"},
	)

	Sessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "scrolly",
			Name:      "sessions",
			Help:      "Client navigation sessions currently held",
		},
	)
)

// RecordTransition records a navigation request.
func RecordTransition(direction, outcome string) {
	Transitions.WithLabelValues(direction, outcome).Inc()
}

// RecordPaint records a finished paint.
func RecordPaint(scene string, seconds float64) {
	PaintDuration.WithLabelValues(scene).Observe(seconds)
}

// RecordLoad records the outcome of loading one source.
func RecordLoad(source string, rows, skipped int, err error) {
	if err != nil {
		LoadFailures.WithLabelValues(source).Inc()
		return
	}
	LoadedRows.WithLabelValues(source).Set(float64(rows))
	SkippedRows.WithLabelValues(source).Set(float64(skipped))
}
