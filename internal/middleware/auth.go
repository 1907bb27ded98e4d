package middleware

import (
	"net/http"
	"strings"

	"github.com/pranvibmania-max/guardapp-sub001/internal/token"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares
const (
	ContextParentID = "parent_id"
	ContextDeviceID = "device_id"
)

// ParentSessionRequired guards the dashboard endpoints: requests without a
// logged-in parent session are rejected with 401.
func ParentSessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		parentID := session.Get("parent_id")
		if parentID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		c.Set(ContextParentID, parentID.(string))
		c.Next()
	}
}

// DeviceTokenRequired validates the Bearer device token issued at pairing
// time. Mounted on /device/* routes only when REQUIRE_DEVICE_TOKEN is set,
// so the default behavior stays token-free for older child app builds.
func DeviceTokenRequired(provider *token.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Device token required",
			})
			return
		}

		result, err := provider.ValidateDeviceToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid device token",
			})
			return
		}

		c.Set(ContextDeviceID, result.DeviceID)
		c.Next()
	}
}
