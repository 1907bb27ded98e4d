package metrics

import (
	"sync"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements Recorder interface at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Pairing Flow Metrics
	PairCodesIssuedTotal      *prometheus.CounterVec
	PairCodeVerificationTotal *prometheus.CounterVec
	PairCodesActive           prometheus.Gauge
	PairCompletedTotal        prometheus.Counter
	PairingDuration           prometheus.Histogram

	// Device Registry Metrics
	HeartbeatsTotal      *prometheus.CounterVec
	DevicesUnpairedTotal prometheus.Counter
	DevicesTotal         prometheus.Gauge
	DevicesOnline        prometheus.Gauge

	// Authentication Metrics
	ParentLoginTotal *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	return &Metrics{
		PairCodesIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardapp_pair_codes_issued_total",
				Help: "Total number of pairing codes issued",
			},
			[]string{"result"}, // success, error
		),
		PairCodeVerificationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardapp_pair_code_verification_total",
				Help: "Total number of pairing code verifications",
			},
			[]string{"result"}, // success, invalid, used, expired
		),
		PairCodesActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "guardapp_pair_codes_active",
				Help: "Current number of active pairing codes",
			},
		),
		PairCompletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "guardapp_pair_completed_total",
				Help: "Total number of devices paired successfully",
			},
		),
		PairingDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "guardapp_pairing_duration_seconds",
				Help:    "Time between code issuance and successful verification",
				Buckets: prometheus.DefBuckets,
			},
		),

		HeartbeatsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardapp_heartbeats_total",
				Help: "Total number of device heartbeats received",
			},
			[]string{"result"}, // success, not_found, error
		),
		DevicesUnpairedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "guardapp_devices_unpaired_total",
				Help: "Total number of device unpair operations",
			},
		),
		DevicesTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "guardapp_devices_total",
				Help: "Current number of paired devices",
			},
		),
		DevicesOnline: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "guardapp_devices_online",
				Help: "Current number of devices reporting online",
			},
		),

		ParentLoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardapp_parent_login_total",
				Help: "Total number of parent login attempts",
			},
			[]string{"result"}, // success, failure
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardapp_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "guardapp_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "guardapp_http_requests_in_flight",
				Help: "Current number of in-flight HTTP requests",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guardapp_database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"},
		),
	}
}

const (
	resultSuccess = "success"
	resultError   = "error"
	resultFailure = "failure"
)

// RecordPairCodeIssued records pairing code issuance
func (m *Metrics) RecordPairCodeIssued(success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.PairCodesIssuedTotal.WithLabelValues(result).Inc()
}

// RecordPairCodeVerification records a verification result
func (m *Metrics) RecordPairCodeVerification(result string) {
	// result: success, invalid, used, expired
	m.PairCodeVerificationTotal.WithLabelValues(result).Inc()
}

// RecordPairCompleted records a successful pairing
func (m *Metrics) RecordPairCompleted(pairingTime time.Duration) {
	m.PairCompletedTotal.Inc()
	m.PairingDuration.Observe(pairingTime.Seconds())
}

// RecordHeartbeat records a device heartbeat result
func (m *Metrics) RecordHeartbeat(result string) {
	// result: success, not_found, error
	m.HeartbeatsTotal.WithLabelValues(result).Inc()
}

// RecordDeviceUnpaired records a device unpair
func (m *Metrics) RecordDeviceUnpaired() {
	m.DevicesUnpairedTotal.Inc()
}

// RecordParentLogin records a parent login attempt
func (m *Metrics) RecordParentLogin(success bool) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.ParentLoginTotal.WithLabelValues(result).Inc()
}

// SetActivePairCodesCount sets the current count of active pairing codes (for periodic updates)
func (m *Metrics) SetActivePairCodesCount(count int) {
	m.PairCodesActive.Set(float64(count))
}

// SetDeviceCounts sets the current device gauges (for periodic updates)
func (m *Metrics) SetDeviceCounts(total, online int) {
	m.DevicesTotal.Set(float64(total))
	m.DevicesOnline.Set(float64(online))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
