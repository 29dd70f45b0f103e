// internal/app/system/metrics/metrics.go

// Package metrics exposes Prometheus instrumentation for the HTTP layer
// and the analytics aggregators.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AggregationsTotal   *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec

	SMSDispatched *prometheus.CounterVec
}

// New registers and returns the service collectors.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AggregationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_aggregations_total",
				Help: "Total number of analytics aggregation runs",
			},
			[]string{"aggregator", "status"},
		),
		AggregationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_aggregation_duration_seconds",
				Help:    "Analytics aggregation duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"aggregator"},
		),
		SMSDispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sms_dispatched_total",
				Help: "Total number of SMS dispatch attempts",
			},
			[]string{"status"},
		),
	}
}

// RecordAggregation records one aggregator run.
func (m *Metrics) RecordAggregation(aggregator, status string, duration time.Duration) {
	m.AggregationsTotal.WithLabelValues(aggregator, status).Inc()
	m.AggregationDuration.WithLabelValues(aggregator).Observe(duration.Seconds())
}

// RecordSMS records one SMS dispatch attempt.
func (m *Metrics) RecordSMS(status string) {
	m.SMSDispatched.WithLabelValues(status).Inc()
}

// statusRecorder captures the response status code for labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with count and duration. The raw
// URL path is used as the label; the API surface is small and fixed, so
// cardinality stays bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
