package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupParentRouter(env *testEnv) *gin.Engine {
	router := gin.New()
	h := NewParentHandler(env.pairing, env.devices, env.settings)
	parent := router.Group("/parent")
	{
		parent.GET("/devices", h.ListDevices)
		parent.GET("/pair-code", h.GetPairCode)
		parent.POST("/pair-code", h.RegeneratePairCode)
		parent.GET("/settings", h.GetSettings)
		parent.POST("/settings", h.UpdateSettings)
	}
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListDevices_EmptyIsArrayNotNull(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	w := getJSON(t, router, "/parent/devices")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"devices":[]}`, w.Body.String())
}

func TestListDevices_ReturnsPairedDevice(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)
	pairTestDevice(t, env)

	w := getJSON(t, router, "/parent/devices")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	devices, ok := resp["devices"].([]any)
	require.True(t, ok)
	require.Len(t, devices, 1)

	device := devices[0].(map[string]any)
	assert.Equal(t, "device-123", device["deviceId"])
	assert.Equal(t, "Child Device", device["name"])
	assert.Equal(t, "online", device["status"])
	_, ok = device["lastSync"]
	assert.True(t, ok)
}

func TestGetPairCode_NoneIssued(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	w := getJSON(t, router, "/parent/pair-code")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":null,"expiresAt":null}`, w.Body.String())
}

func TestGetPairCode_ReturnsStoredCode(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	pc, err := env.pairing.IssueCode(context.Background())
	require.NoError(t, err)

	w := getJSON(t, router, "/parent/pair-code")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, pc.Code, resp["code"])

	expiresAt, ok := resp["expiresAt"].(float64)
	require.True(t, ok, "expiresAt must be epoch millis")
	assert.Equal(t, pc.ExpiresAt.UnixMilli(), int64(expiresAt))

	// Reading must not rotate the code
	w = getJSON(t, router, "/parent/pair-code")
	again := decodeJSON(t, w)
	assert.Equal(t, pc.Code, again["code"])
}

func TestRegeneratePairCode(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	w := postJSON(t, router, "/parent/pair-code", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	code, ok := resp["code"].(string)
	require.True(t, ok)
	assert.Len(t, code, 6)
	_, ok = resp["expiresAt"].(float64)
	assert.True(t, ok)
}

func TestGetSettings_Defaults(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	w := getJSON(t, router, "/parent/settings")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, true, resp["realtimeAlerts"])
	assert.Equal(t, false, resp["emailReports"])
	assert.Equal(t, true, resp["pushNotifications"])
}

func TestUpdateSettings(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	w := postJSON(t, router, "/parent/settings",
		`{"realtimeAlerts":false,"emailReports":true,"pushNotifications":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, true, resp["success"])

	settings, ok := resp["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, settings["realtimeAlerts"])
	assert.Equal(t, true, settings["emailReports"])
	assert.Equal(t, false, settings["pushNotifications"])

	// Persisted
	w = getJSON(t, router, "/parent/settings")
	stored := decodeJSON(t, w)
	assert.Equal(t, false, stored["realtimeAlerts"])
}

func TestUpdateSettings_InvalidBody(t *testing.T) {
	env := setupTestEnv(t)
	router := setupParentRouter(env)

	w := postJSON(t, router, "/parent/settings", `{"realtimeAlerts":"yes"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Invalid data", resp["error"])
}
