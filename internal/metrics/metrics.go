// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_api_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alumni_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alumni_db_query_duration_seconds",
			Help:    "Duration of registry queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "resource"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_db_query_errors_total",
			Help: "Total number of failed database operations",
		},
		[]string{"operation", "resource"},
	)

	ReportsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alumni_reports_rendered_total",
			Help: "Total number of PDF reports rendered",
		},
		[]string{"report"},
	)
)

func RecordAPIRequest(method, route, status string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordQuery observes one database round trip; err marks it failed.
func RecordQuery(operation, resource string, d time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, resource).Observe(d.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, resource).Inc()
	}
}

func RecordReport(name string) {
	ReportsRendered.WithLabelValues(name).Inc()
}
