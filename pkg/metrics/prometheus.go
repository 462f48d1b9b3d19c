// Package metrics provides Prometheus metrics for the rehabilitation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the rehabilitation service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a rehab tracker
	sessionsRecorded   prometheus.Counter
	evaluationsByPhase *prometheus.CounterVec
	alertsBySeverity   *prometheus.CounterVec
	evaluationLatency  prometheus.Histogram

	// Input Quality Metrics
	validationFailures prometheus.Counter
	unsupportedInjury  prometheus.Counter

	// Store Metrics - CSV-backed data files
	totalPatients  prometheus.Gauge
	totalSessions  prometheus.Gauge
	totalExercises prometheus.Gauge
	exportsTotal   prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rehab",
		subsystem:        "tracker",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.sessionsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_recorded_total",
		Help:      "Total number of assessment sessions recorded",
	})

	m.evaluationsByPhase = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "evaluations_total",
			Help:      "Total number of evaluations by resulting phase",
		},
		[]string{"phase"},
	)

	m.alertsBySeverity = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "alerts_total",
			Help:      "Total number of alerts raised by severity",
		},
		[]string{"severity"},
	)

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_latency_milliseconds",
		Help:      "Histogram of evaluation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Input Quality Metrics
	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total number of metric payloads rejected by validation",
	})

	m.unsupportedInjury = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unsupported_injury_total",
		Help:      "Total number of requests naming an unsupported injury type",
	})

	// Store Metrics
	m.totalPatients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_patients",
		Help:      "Total number of registered patients",
	})

	m.totalSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_sessions",
		Help:      "Total number of sessions in the session log",
	})

	m.totalExercises = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_exercises",
		Help:      "Total number of exercises in the catalog",
	})

	m.exportsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Total number of spreadsheet exports served",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordSessionRecorded increments the sessions recorded counter.
func RecordSessionRecorded() {
	globalManager.sessionsRecorded.Inc()
}

// RecordEvaluation counts an evaluation by its resulting phase.
func RecordEvaluation(phase string) {
	globalManager.evaluationsByPhase.WithLabelValues(phase).Inc()
}

// RecordAlert counts a raised alert by severity.
func RecordAlert(severity string) {
	globalManager.alertsBySeverity.WithLabelValues(severity).Inc()
}

// RecordEvaluationLatency records evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) {
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordValidationFailure increments the validation failures counter.
func RecordValidationFailure() {
	globalManager.validationFailures.Inc()
}

// RecordUnsupportedInjury increments the unsupported injury counter.
func RecordUnsupportedInjury() {
	globalManager.unsupportedInjury.Inc()
}

// UpdateTotalPatients sets the registered patient count.
func UpdateTotalPatients(count int) {
	globalManager.totalPatients.Set(float64(count))
}

// UpdateTotalSessions sets the stored session count.
func UpdateTotalSessions(count int) {
	globalManager.totalSessions.Set(float64(count))
}

// UpdateTotalExercises sets the exercise catalog count.
func UpdateTotalExercises(count int) {
	globalManager.totalExercises.Set(float64(count))
}

// RecordExport increments the spreadsheet export counter.
func RecordExport() {
	globalManager.exportsTotal.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
