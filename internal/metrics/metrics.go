// Package metrics exposes Prometheus collectors for inbound page requests and
// outbound calls to the league API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peladeiro",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "peladeiro",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method"},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peladeiro",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of calls made to the league API.",
		},
		[]string{"method", "status"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "peladeiro",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls made to the league API.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, upstreamRequests, upstreamDuration)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records an inbound request.
func ObserveHTTP(method string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, statusLabel(status)).Inc()
	httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveUpstream records a call to the league API. A status of 0 means the
// call failed before a response arrived.
func ObserveUpstream(method string, status int, duration time.Duration) {
	upstreamRequests.WithLabelValues(method, statusLabel(status)).Inc()
	upstreamDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
