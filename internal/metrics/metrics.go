package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prehab_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prehab_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EngagementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prehab_engagements_total",
			Help: "Committed favorite, save and rating changes",
		},
		[]string{"kind", "action"},
	)

	ExportedSnapshots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prehab_exported_snapshots_total",
			Help: "Exercise snapshots pushed to export sinks",
		},
		[]string{"sink"},
	)
)

func RecordHttpRequest(method, route, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, route, status).Inc()
	HttpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordEngagement(kind, action string) {
	EngagementsTotal.WithLabelValues(kind, action).Inc()
}

func RecordExport(sink string, count int) {
	ExportedSnapshots.WithLabelValues(sink).Add(float64(count))
}
