package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickme_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickme_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	GuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickme_guard_rejections_total",
			Help: "Operations rejected by a precondition check",
		},
		[]string{"operation", "kind"},
	)

	FilterQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickme_filter_queries_total",
			Help: "Filtered list queries executed",
		},
		[]string{"resource"},
	)

	FilterQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickme_filter_query_duration_seconds",
			Help:    "Filtered list query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	VerificationCodesPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickme_verification_codes_purged_total",
			Help: "Expired verification codes removed by the scheduler",
		},
	)
)

func RecordHttpRequest(method, endpoint, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordGuardRejection(operation, kind string) {
	GuardRejections.WithLabelValues(operation, kind).Inc()
}

func RecordFilterQuery(resource string, duration time.Duration) {
	FilterQueries.WithLabelValues(resource).Inc()
	FilterQueryDuration.WithLabelValues(resource).Observe(duration.Seconds())
}
