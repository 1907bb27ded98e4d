package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	deviceService *services.DeviceService
}

func NewDeviceHandler(ds *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: ds}
}

type heartbeatRequest struct {
	DeviceID string   `json:"deviceId"`
	Battery  *float64 `json:"battery"`
	Network  string   `json:"network"`
}

// Heartbeat handles POST /device/heartbeat
// Called periodically by the child app to report battery and connectivity.
func (h *DeviceHandler) Heartbeat(c *gin.Context) {
	var req heartbeatRequest
	// A non-numeric battery value fails the bind, same as a malformed body
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if req.DeviceID == "" || req.Battery == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	_, err := h.deviceService.Heartbeat(
		c.Request.Context(),
		req.DeviceID,
		int(*req.Battery),
		req.Network,
	)
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"timestamp": time.Now().UnixMilli(),
	})
}

type unpairRequest struct {
	DeviceID string `json:"deviceId"`
}

// Unpair handles POST /device/unpair
// Clears the device slot unconditionally; repeating the call is a no-op.
func (h *DeviceHandler) Unpair(c *gin.Context) {
	var req unpairRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Device ID is required"})
		return
	}

	if err := h.deviceService.Unpair(c.Request.Context(), req.DeviceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
