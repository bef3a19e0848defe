package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "elan",
			Name:      "backend_request_duration_seconds",
			Help:      "Catalog backend request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"route"},
	)

	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "elan",
			Name:      "backend_requests_total",
			Help:      "Total number of catalog backend requests by outcome",
		},
		[]string{"route", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(backendRequestDuration)
	prometheus.MustRegister(backendRequestsTotal)
}

// Route labels; fixed so label cardinality does not grow with names.
const (
	RouteFacetOptions = "facet_options"
	RouteSearch       = "search"
	RouteLanguages    = "languages"
	RouteLanguage     = "language"
	RouteSimilar      = "similar"
)

// Outcome labels
const (
	outcomeOK        = "ok"
	outcomeNotFound  = "not_found"
	outcomeStatus    = "status_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

func observe(route, outcome string, started time.Time) {
	backendRequestDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
	backendRequestsTotal.WithLabelValues(route, outcome).Inc()
}
