package metrics

import (
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
)

// NoopMetrics is a no-operation implementation of core.Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

// Pairing flow - noop implementations
func (n *NoopMetrics) RecordPairCodeIssued(success bool)             {}
func (n *NoopMetrics) RecordPairCodeVerification(result string)      {}
func (n *NoopMetrics) RecordPairCompleted(pairingTime time.Duration) {}

// Device registry - noop implementations
func (n *NoopMetrics) RecordHeartbeat(result string) {}
func (n *NoopMetrics) RecordDeviceUnpaired()         {}

// Authentication - noop implementations
func (n *NoopMetrics) RecordParentLogin(success bool) {}

// Gauge setters - noop implementations
func (n *NoopMetrics) SetActivePairCodesCount(count int) {}
func (n *NoopMetrics) SetDeviceCounts(total, online int) {}

// Database operations - noop implementations
func (n *NoopMetrics) RecordDatabaseQueryError(operation string) {}
