package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// upstreamReqs counts outbound calls by upstream, operation and outcome
	// (ok, degraded, error, timeout).
	upstreamReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_requests_total",
			Help: "Total number of outbound upstream calls.",
		},
		[]string{"upstream", "operation", "outcome"},
	)

	upstreamLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_upstream_duration_seconds",
			Help:    "Duration of outbound upstream calls in seconds.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"upstream", "operation"},
	)
)

func init() {
	prometheus.MustRegister(upstreamReqs, upstreamLat)
}

// Outcome labels beyond domain.OutcomeKind.
const (
	outcomeError   = "error"
	outcomeTimeout = "timeout"
)

func observeUpstream(upstream, operation, outcome string, start time.Time) {
	upstreamReqs.WithLabelValues(upstream, operation, outcome).Inc()
	upstreamLat.WithLabelValues(upstream, operation).Observe(time.Since(start).Seconds())
}
