package store

import "errors"

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrDeviceNotFound is returned when a heartbeat targets a device that is
	// not currently paired. Heartbeats never create devices.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrPairCodeAlreadyUsed is returned by ConsumePairCode when the code was
	// already consumed by a concurrent request (0 rows updated).
	ErrPairCodeAlreadyUsed = errors.New("pair code already used")
)
