package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDeviceRouter(env *testEnv) *gin.Engine {
	router := gin.New()
	h := NewDeviceHandler(env.devices)
	device := router.Group("/device")
	{
		device.POST("/heartbeat", h.Heartbeat)
		device.POST("/unpair", h.Unpair)
	}
	return router
}

func pairTestDevice(t *testing.T, env *testEnv) *models.Device {
	t.Helper()
	device := &models.Device{
		ID:       "device-123",
		Name:     "Child Device",
		Status:   models.DeviceStatusOnline,
		LastSync: time.Now(),
	}
	require.NoError(t, env.store.CreateDevice(device))
	return device
}

func TestHeartbeat_Success(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)
	pairTestDevice(t, env)

	before := time.Now().UnixMilli()
	w := postJSON(t, router, "/device/heartbeat",
		`{"deviceId":"device-123","battery":72,"network":"wifi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, true, resp["success"])

	ts, ok := resp["timestamp"].(float64)
	require.True(t, ok, "timestamp must be a JSON number")
	assert.GreaterOrEqual(t, int64(ts), before)
}

func TestHeartbeat_NonNumericBattery(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)
	pairTestDevice(t, env)

	w := postJSON(t, router, "/device/heartbeat",
		`{"deviceId":"device-123","battery":"full","network":"wifi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Invalid data", resp["error"])
}

func TestHeartbeat_MissingFields(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)

	for _, body := range []string{
		`{"battery":72,"network":"wifi"}`,
		`{"deviceId":"device-123","network":"wifi"}`,
		`{}`,
	} {
		w := postJSON(t, router, "/device/heartbeat", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		resp := decodeJSON(t, w)
		assert.Equal(t, "Invalid data", resp["error"])
	}
}

func TestHeartbeat_UnknownDevice(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)

	w := postJSON(t, router, "/device/heartbeat",
		`{"deviceId":"ghost","battery":50,"network":"wifi"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Device not found", resp["error"])

	// The failed heartbeat must not have registered a device
	devices, err := env.store.ListDevices()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestUnpair_Success(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)
	pairTestDevice(t, env)

	w := postJSON(t, router, "/device/unpair", `{"deviceId":"device-123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, true, resp["success"])

	devices, err := env.store.ListDevices()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestUnpair_MissingDeviceID(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)

	w := postJSON(t, router, "/device/unpair", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Device ID is required", resp["error"])
}

func TestUnpair_RepeatedCallsSucceed(t *testing.T) {
	env := setupTestEnv(t)
	router := setupDeviceRouter(env)

	for i := 0; i < 2; i++ {
		w := postJSON(t, router, "/device/unpair", `{"deviceId":"device-123"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
