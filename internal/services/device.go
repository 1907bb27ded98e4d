package services

import (
	"context"
	"errors"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
	"github.com/pranvibmania-max/guardapp-sub001/internal/models"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
)

// Heartbeat metric results
const (
	heartbeatResultSuccess  = "success"
	heartbeatResultNotFound = "not_found"
	heartbeatResultError    = "error"
)

type DeviceService struct {
	store   *store.Store
	metrics core.Recorder
}

func NewDeviceService(s *store.Store, m core.Recorder) *DeviceService {
	return &DeviceService{store: s, metrics: m}
}

// Heartbeat applies a status report to an existing device, refreshing
// battery, network, derived status and lastSync. A heartbeat against an
// absent device is not-found, never an implicit create.
func (s *DeviceService) Heartbeat(
	ctx context.Context,
	deviceID string,
	battery int,
	network string,
) (*models.Device, error) {
	status := models.DeviceStatusOnline
	if network == models.DeviceStatusOffline {
		status = models.DeviceStatusOffline
	}

	err := s.store.UpdateDeviceStatus(deviceID, battery, network, status, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			s.metrics.RecordHeartbeat(heartbeatResultNotFound)
			return nil, ErrDeviceNotFound
		}
		s.metrics.RecordHeartbeat(heartbeatResultError)
		return nil, err
	}

	device, err := s.store.GetDevice(deviceID)
	if err != nil {
		s.metrics.RecordHeartbeat(heartbeatResultError)
		return nil, err
	}

	s.metrics.RecordHeartbeat(heartbeatResultSuccess)
	return device, nil
}

// Unpair clears the device slot unconditionally. Unpairing an already
// unpaired device is a no-op, not an error.
func (s *DeviceService) Unpair(ctx context.Context, deviceID string) error {
	if err := s.store.DeleteDevice(deviceID); err != nil {
		return err
	}
	s.metrics.RecordDeviceUnpaired()
	return nil
}

// ListDevices returns all paired devices (0 or 1 in practice; the response
// shape allows future multiplicity).
func (s *DeviceService) ListDevices(ctx context.Context) ([]models.Device, error) {
	return s.store.ListDevices()
}
