// Package metrics defines the Prometheus instrumentation for the presign
// server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered by the presign server.
type Metrics struct {
	registry *prometheus.Registry

	// PresignRequests counts presign operations by HTTP method of the
	// signed request and outcome ("ok" or "error").
	PresignRequests *prometheus.CounterVec

	// PresignDuration observes how long building and signing a URL takes.
	PresignDuration prometheus.Histogram

	// KeystoreLookups counts credential fetches by outcome
	// ("hit", "miss" or "error").
	KeystoreLookups *prometheus.CounterVec

	// HTTPRequests counts handled HTTP requests by route and status code.
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration observes HTTP request latency by route.
	HTTPDuration *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, including the standard Go
// and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		PresignRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presign",
			Name:      "requests_total",
			Help:      "Presign operations by signed request method and outcome.",
		}, []string{"method", "status"}),

		PresignDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "presign",
			Name:      "duration_seconds",
			Help:      "Time spent building and signing presigned URLs.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),

		KeystoreLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presign",
			Subsystem: "keystore",
			Name:      "lookups_total",
			Help:      "Credential lookups by outcome.",
		}, []string{"status"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "presign",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "presign",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
