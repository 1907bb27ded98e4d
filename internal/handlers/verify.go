package handlers

import (
	"errors"
	"net/http"

	"github.com/pranvibmania-max/guardapp-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type VerifyHandler struct {
	pairingService *services.PairingService
}

func NewVerifyHandler(ps *services.PairingService) *VerifyHandler {
	return &VerifyHandler{pairingService: ps}
}

type verifyRequest struct {
	Code       string `json:"code"`
	DeviceName string `json:"deviceName"`
}

// VerifyCode handles POST /verify-code
// Submitted by the child app with the code the parent's dashboard displays.
// The failure reasons are user-facing strings the app shows verbatim, so the
// check order (required -> invalid -> used -> expired) is part of the contract.
func (h *VerifyHandler) VerifyCode(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"reason":  "Code is required",
		})
		return
	}

	device, deviceToken, err := h.pairingService.Verify(
		c.Request.Context(),
		req.Code,
		req.DeviceName,
	)
	if err != nil {
		var reason string
		switch {
		case errors.Is(err, services.ErrCodeInvalid):
			reason = "Invalid code"
		case errors.Is(err, services.ErrCodeUsed):
			reason = "Code already used"
		case errors.Is(err, services.ErrCodeExpired):
			reason = "Code expired"
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"reason":  "Internal server error",
			})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"reason":  reason,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Device paired successfully!",
		"deviceId":    device.ID,
		"deviceToken": deviceToken.TokenString,
	})
}
