package orbitguard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pairsEvaluatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitguard_pairs_evaluated_total",
			Help: "Total number of candidate pairs evaluated.",
		},
	)

	nodesFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitguard_nodes_found_total",
			Help: "Total number of qualifying conjunction nodes.",
		},
	)

	riskEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitguard_risk_events_total",
			Help: "Total number of forecast risk events by level.",
		},
		[]string{"level"},
	)

	stepDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitguard_step_duration_seconds",
			Help:    "Duration of one forecast step evaluation in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(pairsEvaluatedTotal)
	prometheus.MustRegister(nodesFoundTotal)
	prometheus.MustRegister(riskEventsTotal)
	prometheus.MustRegister(stepDurationSeconds)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
