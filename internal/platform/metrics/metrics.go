// Package metrics exposes Prometheus instruments for the HTTP layer and the
// result and personal-record use cases.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PR lookup outcomes.
const (
	PRCacheHit  = "cache_hit"
	PRComputed  = "computed"
	PRNoResults = "no_results"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wodlog_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wodlog_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	resultsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wodlog_results_recorded_total",
		Help: "Count of workout results recorded, by score type",
	}, []string{"score_type"})

	resultsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wodlog_results_deleted_total",
		Help: "Count of workout results deleted",
	})

	prLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wodlog_pr_lookups_total",
		Help: "Count of personal record lookups by outcome",
	}, []string{"outcome"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveResultRecorded increments the recorded-results counter for scoreType.
func ObserveResultRecorded(scoreType string) {
	resultsRecorded.WithLabelValues(scoreType).Inc()
}

// ObserveResultDeleted increments the deleted-results counter.
func ObserveResultDeleted() {
	resultsDeleted.Inc()
}

// ObservePRLookup counts a personal record lookup with one of the PR* outcomes.
func ObservePRLookup(outcome string) {
	prLookups.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
