package services

import (
	"context"

	"github.com/pranvibmania-max/guardapp-sub001/internal/models"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"
)

type SettingsService struct {
	store *store.Store
}

func NewSettingsService(s *store.Store) *SettingsService {
	return &SettingsService{store: s}
}

// Get returns the notification settings, creating defaults on first access.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.store.GetSettings()
}

// Update merges the given fields into the stored record and returns the
// resulting record. The dashboard resubmits all three flags in practice, but
// nil fields are tolerated and left unchanged.
func (s *SettingsService) Update(
	ctx context.Context,
	patch models.SettingsPatch,
) (*models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, err
	}

	if patch.RealtimeAlerts != nil {
		settings.RealtimeAlerts = *patch.RealtimeAlerts
	}
	if patch.EmailReports != nil {
		settings.EmailReports = *patch.EmailReports
	}
	if patch.PushNotifications != nil {
		settings.PushNotifications = *patch.PushNotifications
	}

	if err := s.store.UpdateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}
