package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Report build metrics
	ReportsTotal      *prometheus.CounterVec
	ReportDuration    *prometheus.HistogramVec
	ReportsInProgress prometheus.Gauge

	// Upstream API metrics
	UpstreamAPICalls    *prometheus.CounterVec
	UpstreamAPIDuration *prometheus.HistogramVec
	UpstreamAPIFailures *prometheus.CounterVec

	// Aggregation metrics
	PagesFetched          *prometheus.CounterVec
	ReservationsProcessed *prometheus.CounterVec
	PropertiesDegraded    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ReportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_reports_total",
				Help: "Total number of dashboard report builds",
			},
			[]string{"status"},
		),

		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_report_duration_seconds",
				Help:    "Dashboard report build duration in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"status"},
		),

		ReportsInProgress: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dashboard_reports_in_progress",
				Help: "Number of dashboard report builds currently in progress",
			},
		),

		UpstreamAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_api_calls_total",
				Help: "Total number of upstream API calls",
			},
			[]string{"api", "operation", "status"},
		),

		UpstreamAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_api_duration_seconds",
				Help:    "Upstream API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api", "operation"},
		),

		UpstreamAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_api_failures_total",
				Help: "Total number of upstream API failures",
			},
			[]string{"api", "error_type"},
		),

		PagesFetched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_pages_fetched_total",
				Help: "Total number of result pages fetched from upstream APIs",
			},
			[]string{"api", "operation"},
		),

		ReservationsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_processed_total",
				Help: "Total number of reservations folded into aggregates",
			},
			[]string{"property_id"},
		),

		PropertiesDegraded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "properties_degraded_total",
				Help: "Total number of per-property aggregations degraded to zero values",
			},
			[]string{"property_id"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Report build metrics
func (m *Metrics) RecordReport(status string, duration time.Duration) {
	m.ReportsTotal.WithLabelValues(status).Inc()
	m.ReportDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// Upstream API call metrics
func (m *Metrics) RecordUpstreamAPICall(api, operation, status string, duration time.Duration) {
	m.UpstreamAPICalls.WithLabelValues(api, operation, status).Inc()
	m.UpstreamAPIDuration.WithLabelValues(api, operation).Observe(duration.Seconds())
}

// Upstream API failure metrics
func (m *Metrics) RecordUpstreamAPIFailure(api, errorType string) {
	m.UpstreamAPIFailures.WithLabelValues(api, errorType).Inc()
}

// Page fetch metrics
func (m *Metrics) RecordPageFetched(api, operation string) {
	m.PagesFetched.WithLabelValues(api, operation).Inc()
}

// Reservation fold metrics
func (m *Metrics) RecordReservationsProcessed(propertyID string, count int) {
	m.ReservationsProcessed.WithLabelValues(propertyID).Add(float64(count))
}

// Degraded property metrics
func (m *Metrics) RecordPropertyDegraded(propertyID string) {
	m.PropertiesDegraded.WithLabelValues(propertyID).Inc()
}

// Report builds in progress counter
func (m *Metrics) IncReportsInProgress() {
	m.ReportsInProgress.Inc()
}

// Report builds in progress counter
func (m *Metrics) DecReportsInProgress() {
	m.ReportsInProgress.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
