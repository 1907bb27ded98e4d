package handlers

import (
	"errors"
	"net/http"

	"github.com/pranvibmania-max/guardapp-sub001/internal/models"
	"github.com/pranvibmania-max/guardapp-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type ParentHandler struct {
	pairingService  *services.PairingService
	deviceService   *services.DeviceService
	settingsService *services.SettingsService
}

func NewParentHandler(
	ps *services.PairingService,
	ds *services.DeviceService,
	ss *services.SettingsService,
) *ParentHandler {
	return &ParentHandler{
		pairingService:  ps,
		deviceService:   ds,
		settingsService: ss,
	}
}

// ListDevices handles GET /parent/devices
func (h *ParentHandler) ListDevices(c *gin.Context) {
	devices, err := h.deviceService.ListDevices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if devices == nil {
		devices = []models.Device{}
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// GetPairCode handles GET /parent/pair-code
// Read-only peek: returns the stored code as-is, null fields if none issued.
func (h *ParentHandler) GetPairCode(c *gin.Context) {
	pc, err := h.pairingService.CurrentCode(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoActiveCode) {
			c.JSON(http.StatusOK, gin.H{"code": nil, "expiresAt": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      pc.Code,
		"expiresAt": pc.ExpiresAt.UnixMilli(),
	})
}

// RegeneratePairCode handles POST /parent/pair-code
func (h *ParentHandler) RegeneratePairCode(c *gin.Context) {
	pc, err := h.pairingService.IssueCode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      pc.Code,
		"expiresAt": pc.ExpiresAt.UnixMilli(),
	})
}

// GetSettings handles GET /parent/settings
func (h *ParentHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles POST /parent/settings
func (h *ParentHandler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}
