// Package metrics exposes Prometheus instrumentation for the analysis
// service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysesTotal counts analysis requests by outcome: ok, config_error,
	// solver_error, numerical_error or internal_error.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flexura_analyses_total",
		Help: "Analysis requests by outcome.",
	}, []string{"outcome"})

	// AnalysisDuration observes wall-clock time of a full pipeline run.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flexura_analysis_duration_seconds",
		Help:    "Duration of a full analysis pipeline run.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	// RequestsTotal counts HTTP requests by route and status class.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flexura_http_requests_total",
		Help: "HTTP requests by route and status class.",
	}, []string{"route", "class"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
