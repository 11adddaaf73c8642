// Package metrics exposes Prometheus collectors for batch scoring and ranking reads.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "influroi"

// Candidate outcomes
const (
	OutcomeScored   = "scored"
	OutcomeFallback = "fallback"
)

var (
	batchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "runs_total",
		Help:      "Project scoring batch runs by status.",
	}, []string{"status"})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "duration_seconds",
		Help:      "Wall time of a project scoring batch.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	candidatesScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "candidates_total",
		Help:      "Candidates processed by outcome.",
	}, []string{"outcome"})

	providerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "errors_total",
		Help:      "Metric provider failures by provider.",
	}, []string{"provider"})

	rankingReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ranking",
		Name:      "reads_total",
		Help:      "Cohort ranking reads by policy and cache result.",
	}, []string{"policy", "cache"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status class.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	cohortSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ranking",
		Name:      "cohort_size",
		Help:      "Number of candidates redistributed per ranking read.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
)

// RecordBatchRun counts a finished batch ("completed" or "failed").
func RecordBatchRun(status string, seconds float64) {
	batchRuns.WithLabelValues(status).Inc()
	batchDuration.Observe(seconds)
}

// RecordCandidate counts one candidate outcome.
func RecordCandidate(outcome string) {
	candidatesScored.WithLabelValues(outcome).Inc()
}

// RecordProviderError counts a provider failure.
func RecordProviderError(provider string) {
	providerErrors.WithLabelValues(provider).Inc()
}

// RecordRankingRead counts a ranking read.
func RecordRankingRead(policy string, cacheHit bool, size int) {
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	rankingReads.WithLabelValues(policy, cache).Inc()
	if !cacheHit {
		cohortSize.Observe(float64(size))
	}
}

// RecordHTTPRequest counts one HTTP request. route 는 gin 의 FullPath (파라미터 미치환)
func RecordHTTPRequest(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
