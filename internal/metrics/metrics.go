// Package metrics provides Prometheus metrics for the watcher and importer.
package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Window watcher metrics
	WatcherPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easyeda2kicad_watcher_passes_total",
			Help: "Total number of window watcher passes",
		},
	)

	WindowErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easyeda2kicad_watcher_window_errors_total",
			Help: "Per-window failures skipped during a pass",
		},
		[]string{"stage"},
	)

	PanelsAttached = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easyeda2kicad_panels_attached_total",
			Help: "Import panels attached to target windows",
		},
	)

	PanelsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "easyeda2kicad_panels_active",
			Help: "Target windows currently holding an import panel",
		},
	)

	// Import metrics
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easyeda2kicad_imports_total",
			Help: "Import attempts by outcome",
		},
		[]string{"outcome"},
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "easyeda2kicad_import_duration_seconds",
			Help:    "Wall time of converter runs",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
)

// Router exposes the default registry at /metrics.
func Router() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	return r
}
