package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ResultSuccess is the result label of an accepted import
const ResultSuccess = "success"

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbonscribe",
		Subsystem: "boundary_import",
		Name:      "imports_total",
		Help:      "Total boundary imports by detected format and result",
	}, []string{"format", "result"})

	ImportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carbonscribe",
		Subsystem: "boundary_import",
		Name:      "duration_seconds",
		Help:      "Duration of boundary imports from dispatch to outcome",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"format"})

	UploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carbonscribe",
		Subsystem: "boundary_import",
		Name:      "upload_size_bytes",
		Help:      "Size of uploaded boundary files",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"format"})
)

// ObserveImport records one finished import
func ObserveImport(format, result string, seconds float64) {
	ImportsTotal.WithLabelValues(format, result).Inc()
	ImportDuration.WithLabelValues(format).Observe(seconds)
}
