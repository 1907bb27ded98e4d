package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
	"github.com/pranvibmania-max/guardapp-sub001/internal/models"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"
	"github.com/pranvibmania-max/guardapp-sub001/internal/token"
	"github.com/pranvibmania-max/guardapp-sub001/internal/util"

	"github.com/google/uuid"
)

var (
	ErrNoActiveCode = errors.New("no pairing code issued")
	ErrCodeInvalid  = errors.New("invalid pairing code")
	ErrCodeUsed     = errors.New("pairing code already used")
	ErrCodeExpired  = errors.New("pairing code expired")
)

// Verification metric results
const (
	verifyResultSuccess = "success"
	verifyResultInvalid = "invalid"
	verifyResultUsed    = "used"
	verifyResultExpired = "expired"
)

// DefaultDeviceName is used when the child app does not send a display name.
const DefaultDeviceName = "Child Device"

type PairingService struct {
	store   *store.Store
	config  *config.Config
	tokens  *token.Provider
	metrics core.Recorder
}

func NewPairingService(
	s *store.Store,
	cfg *config.Config,
	tokens *token.Provider,
	m core.Recorder,
) *PairingService {
	return &PairingService{store: s, config: cfg, tokens: tokens, metrics: m}
}

// CurrentCode returns the presently stored pairing code, including
// already-expired or already-used ones. Callers decide validity. Read-only
// peek: never creates new state as a side effect.
func (s *PairingService) CurrentCode(ctx context.Context) (*models.PairCode, error) {
	pc, err := s.store.GetPairCode()
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrNoActiveCode
		}
		return nil, err
	}
	return pc, nil
}

// IssueCode generates a new random numeric code and unconditionally replaces
// any prior code, invalidating it even if unexpired and unused.
func (s *PairingService) IssueCode(ctx context.Context) (*models.PairCode, error) {
	code, err := util.RandomDigits(s.config.PairCodeLength)
	if err != nil {
		s.metrics.RecordPairCodeIssued(false)
		return nil, fmt.Errorf("failed to generate pairing code: %w", err)
	}

	pc := &models.PairCode{
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.PairCodeExpiration),
		Used:      false,
	}

	if err := s.store.ReplacePairCode(pc); err != nil {
		s.metrics.RecordPairCodeIssued(false)
		return nil, err
	}

	s.metrics.RecordPairCodeIssued(true)
	return pc, nil
}

// Verify validates a submitted code against the stored one and consumes it.
// The check order is observable behavior and must not change: absent/mismatch
// before used before expired, so a used-and-expired code reports "used".
// On success the device record is created and a device token issued; this is
// the only device creation path.
func (s *PairingService) Verify(
	ctx context.Context,
	inputCode, deviceName string,
) (*models.Device, *token.Result, error) {
	pc, err := s.store.GetPairCode()
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			s.metrics.RecordPairCodeVerification(verifyResultInvalid)
			return nil, nil, ErrCodeInvalid
		}
		return nil, nil, err
	}

	if subtle.ConstantTimeCompare([]byte(pc.Code), []byte(inputCode)) != 1 {
		s.metrics.RecordPairCodeVerification(verifyResultInvalid)
		return nil, nil, ErrCodeInvalid
	}

	if pc.Used {
		s.metrics.RecordPairCodeVerification(verifyResultUsed)
		return nil, nil, ErrCodeUsed
	}

	if pc.IsExpired() {
		s.metrics.RecordPairCodeVerification(verifyResultExpired)
		return nil, nil, ErrCodeExpired
	}

	// Conditional update closes the window between the Used check above and
	// the consume: a concurrent verify that won loses us the code.
	if err := s.store.ConsumePairCode(pc.ID); err != nil {
		if errors.Is(err, store.ErrPairCodeAlreadyUsed) {
			s.metrics.RecordPairCodeVerification(verifyResultUsed)
			return nil, nil, ErrCodeUsed
		}
		return nil, nil, err
	}

	if deviceName == "" {
		deviceName = DefaultDeviceName
	}

	device := &models.Device{
		ID:       uuid.New().String(),
		Name:     deviceName,
		Status:   models.DeviceStatusOnline,
		LastSync: time.Now(),
	}
	if err := s.store.CreateDevice(device); err != nil {
		return nil, nil, err
	}

	deviceToken, err := s.tokens.GenerateDeviceToken(device.ID)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.RecordPairCodeVerification(verifyResultSuccess)
	s.metrics.RecordPairCompleted(time.Since(pc.CreatedAt))

	return device, deviceToken, nil
}
