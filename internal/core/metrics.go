package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Pairing flow
	RecordPairCodeIssued(success bool)
	RecordPairCodeVerification(result string)
	RecordPairCompleted(pairingTime time.Duration)

	// Device registry
	RecordHeartbeat(result string)
	RecordDeviceUnpaired()

	// Authentication
	RecordParentLogin(success bool)

	// Gauge Setters (for periodic updates)
	SetActivePairCodesCount(count int)
	SetDeviceCounts(total, online int)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by the gauge-update cache wrapper.
type MetricsStore interface {
	CountDevices() (int64, error)
	CountOnlineDevices() (int64, error)
	CountActivePairCodes() (int64, error)
}
