package bootstrap

import (
	"github.com/pranvibmania-max/guardapp-sub001/internal/handlers"
	"github.com/pranvibmania-max/guardapp-sub001/internal/services"
)

// handlerSet groups all HTTP handlers
type handlerSet struct {
	auth   *handlers.AuthHandler
	parent *handlers.ParentHandler
	device *handlers.DeviceHandler
	verify *handlers.VerifyHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	authService *services.AuthService,
	pairingService *services.PairingService,
	deviceService *services.DeviceService,
	settingsService *services.SettingsService,
) handlerSet {
	return handlerSet{
		auth:   handlers.NewAuthHandler(authService),
		parent: handlers.NewParentHandler(pairingService, deviceService, settingsService),
		device: handlers.NewDeviceHandler(deviceService),
		verify: handlers.NewVerifyHandler(pairingService),
	}
}
