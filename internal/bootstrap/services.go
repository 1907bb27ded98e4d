package bootstrap

import (
	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
	"github.com/pranvibmania-max/guardapp-sub001/internal/services"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"
	"github.com/pranvibmania-max/guardapp-sub001/internal/token"
)

// initializeServices creates all business services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	tokens *token.Provider,
	recorder core.Recorder,
) (
	*services.AuthService,
	*services.PairingService,
	*services.DeviceService,
	*services.SettingsService,
) {
	authService := services.NewAuthService(db, recorder)
	pairingService := services.NewPairingService(db, cfg, tokens, recorder)
	deviceService := services.NewDeviceService(db, recorder)
	settingsService := services.NewSettingsService(db)

	return authService, pairingService, deviceService, settingsService
}
