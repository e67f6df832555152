// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic: request
// counts, latencies, in-flight concurrency and response sizes, labelled by
//
//   - method: HTTP method verb
//   - path:   the registered Gin route (e.g. /search); requests that matched
//     no route share the single label "unmatched" so that scanners probing
//     random URLs cannot inflate cardinality
//   - status: numeric status code as a string (counter only)
//
// Model-backed routes that answered with a degraded fallback are counted
// separately, keyed by route, from the X-Upstream-Outcome response header.
// Upstream call metrics live with the services that make those calls.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// unmatchedPath labels requests that hit no route (404s, preflights).
	unmatchedPath = "unmatched"
	// upstreamOutcomeHeader is set by handlers of model-backed routes.
	upstreamOutcomeHeader = "X-Upstream-Outcome"
	outcomeDegraded       = "degraded"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Status is omitted to keep histogram cardinality low.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds.",
			// Model calls routinely take several seconds.
			Buckets: []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 45},
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	httpDegraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_degraded_responses_total",
			Help: "Responses that carried a fallback payload instead of model output.",
		},
		[]string{"path"},
	)

	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				50, 200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
			},
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpDegraded, httpRespSize)
}

// Metrics returns a Gin middleware that instruments requests with
// Prometheus. Mount the exposition endpoint separately:
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Header().Get(upstreamOutcomeHeader) == outcomeDegraded {
			httpDegraded.WithLabelValues(path).Inc()
		}
		// Size is -1 when nothing was written (e.g. 204 preflight).
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
