// Package metrics exposes the Prometheus collectors of the API server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderquest_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wanderquest_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wanderquest_http_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderquest_upstream_calls_total",
			Help: "Calls to third-party APIs by provider, operation and outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)

	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wanderquest_upstream_call_duration_seconds",
			Help:    "Latency of third-party API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	EnrichmentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderquest_enrichment_failures_total",
			Help: "Itinerary enrichments that were dropped after an upstream failure",
		},
		[]string{"kind"},
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamCall records one outbound call; err nil counts as "ok".
func RecordUpstreamCall(provider, operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamCallsTotal.WithLabelValues(provider, operation, outcome).Inc()
	UpstreamCallDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

func RecordEnrichmentFailure(kind string) {
	EnrichmentFailures.WithLabelValues(kind).Inc()
}
