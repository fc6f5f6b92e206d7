package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gestured",
			Subsystem: "inference",
			Name:      "predictions_total",
			Help:      "Total number of predictions by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	inferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gestured",
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Normalization plus inference time per prediction",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"model"},
	)

	lowConfidenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gestured",
			Subsystem: "inference",
			Name:      "low_confidence_total",
			Help:      "Successful predictions below the requested threshold",
		},
		[]string{"model"},
	)

	modelsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gestured",
			Subsystem: "registry",
			Name:      "models_loaded",
			Help:      "Number of models in the servable set",
		},
	)

	loadFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gestured",
			Subsystem: "registry",
			Name:      "load_failures_total",
			Help:      "Models that failed to load at startup",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, inferenceDuration, lowConfidenceTotal, modelsLoaded, loadFailuresTotal)
}

// unresolvedModel labels metrics for names outside the loaded set, keeping
// label cardinality bounded by the catalog.
const unresolvedModel = "unresolved"
