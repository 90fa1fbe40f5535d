package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remix",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "remix",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	// Non-success responses and transport failures from third-party APIs.
	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remix",
			Subsystem: "upstream",
			Name:      "errors_total",
			Help:      "Failed calls to external APIs",
		},
		[]string{"service"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remix",
			Subsystem: "generation",
			Name:      "total",
			Help:      "Generation calls by provider and outcome (success|fallback)",
		},
		[]string{"provider", "outcome"},
	)

	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remix",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Video id resolutions by winning strategy",
		},
		[]string{"strategy"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

func RecordUpstreamError(service string) {
	UpstreamErrorsTotal.WithLabelValues(service).Inc()
}

func RecordGeneration(provider, outcome string) {
	GenerationsTotal.WithLabelValues(provider, outcome).Inc()
}

func RecordResolution(strategy string) {
	ResolutionsTotal.WithLabelValues(strategy).Inc()
}
