package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
	"github.com/pranvibmania-max/guardapp-sub001/internal/token"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentSessionRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("guardapp_session", cookie.NewStore([]byte("test-secret"))))

	// Login stand-in that sets the session, plus a guarded route
	router.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("parent_id", "parent-1")
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	router.GET("/guarded", ParentSessionRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"parentId": c.GetString(ContextParentID)})
	})

	// Without a session
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Log in, replay the cookie
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "parent-1")
}

func TestDeviceTokenRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		BaseURL:               "http://localhost:8080",
		JWTSecret:             "test-secret",
		DeviceTokenExpiration: time.Hour,
	}
	provider := token.NewProvider(cfg)

	router := gin.New()
	router.POST("/device/heartbeat", DeviceTokenRequired(provider), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"deviceId": c.GetString(ContextDeviceID)})
	})

	do := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/device/heartbeat", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Missing and malformed headers
	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer not-a-jwt").Code)

	// Valid token passes and exposes the device id
	issued, err := provider.GenerateDeviceToken("device-123")
	require.NoError(t, err)
	w := do("Bearer " + issued.TokenString)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "device-123")
}
