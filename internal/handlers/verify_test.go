package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/config"
	"github.com/pranvibmania-max/guardapp-sub001/internal/metrics"
	"github.com/pranvibmania-max/guardapp-sub001/internal/models"
	"github.com/pranvibmania-max/guardapp-sub001/internal/services"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"
	"github.com/pranvibmania-max/guardapp-sub001/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store    *store.Store
	config   *config.Config
	pairing  *services.PairingService
	devices  *services.DeviceService
	settings *services.SettingsService
	auth     *services.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		BaseURL:               "http://localhost:8080",
		PairCodeExpiration:    5 * time.Minute,
		PairCodeLength:        6,
		JWTSecret:             "test-secret",
		DeviceTokenExpiration: time.Hour,
	}

	recorder := metrics.NewNoopMetrics()
	return &testEnv{
		store:    s,
		config:   cfg,
		pairing:  services.NewPairingService(s, cfg, token.NewProvider(cfg), recorder),
		devices:  services.NewDeviceService(s, recorder),
		settings: services.NewSettingsService(s),
		auth:     services.NewAuthService(s, recorder),
	}
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func setupVerifyRouter(env *testEnv) *gin.Engine {
	router := gin.New()
	h := NewVerifyHandler(env.pairing)
	router.POST("/verify-code", h.VerifyCode)
	return router
}

func TestVerifyCode_MissingCode(t *testing.T) {
	env := setupTestEnv(t)
	router := setupVerifyRouter(env)

	for _, body := range []string{`{}`, `{"code":""}`, `not json`} {
		w := postJSON(t, router, "/verify-code", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeJSON(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Code is required", resp["reason"])
	}
}

func TestVerifyCode_NoCodeIssued(t *testing.T) {
	env := setupTestEnv(t)
	router := setupVerifyRouter(env)

	w := postJSON(t, router, "/verify-code", `{"code":"123456"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Invalid code", resp["reason"])
}

func TestVerifyCode_Success(t *testing.T) {
	env := setupTestEnv(t)
	router := setupVerifyRouter(env)

	pc, err := env.pairing.IssueCode(context.Background())
	require.NoError(t, err)

	w := postJSON(t, router, "/verify-code", `{"code":"`+pc.Code+`","deviceName":"Timmy's phone"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Device paired successfully!", resp["message"])
	assert.NotEmpty(t, resp["deviceId"])
	assert.NotEmpty(t, resp["deviceToken"])
}

func TestVerifyCode_SecondSubmitAlreadyUsed(t *testing.T) {
	env := setupTestEnv(t)
	router := setupVerifyRouter(env)

	pc, err := env.pairing.IssueCode(context.Background())
	require.NoError(t, err)

	w := postJSON(t, router, "/verify-code", `{"code":"`+pc.Code+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/verify-code", `{"code":"`+pc.Code+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Code already used", resp["reason"])
}

func TestVerifyCode_Expired(t *testing.T) {
	env := setupTestEnv(t)
	router := setupVerifyRouter(env)

	require.NoError(t, env.store.ReplacePairCode(&models.PairCode{
		Code:      "482913",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	w := postJSON(t, router, "/verify-code", `{"code":"482913"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Code expired", resp["reason"])
}

func TestVerifyCode_Mismatch(t *testing.T) {
	env := setupTestEnv(t)
	router := setupVerifyRouter(env)

	_, err := env.pairing.IssueCode(context.Background())
	require.NoError(t, err)

	// Wrong guesses never leak whether the stored code is used or expired
	w := postJSON(t, router, "/verify-code", `{"code":"000000a"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Invalid code", resp["reason"])
}
