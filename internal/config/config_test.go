package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 5*time.Minute, cfg.PairCodeExpiration)
	assert.Equal(t, 6, cfg.PairCodeLength)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "guardapp.db", cfg.DatabaseDSN)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.EnableRateLimit)
	assert.False(t, cfg.RequireDeviceToken)
	assert.Equal(t, MetricsCacheTypeMemory, cfg.MetricsCacheType)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("PAIR_CODE_EXPIRATION", "2m")
	t.Setenv("PAIR_CODE_LENGTH", "8")
	t.Setenv("REQUIRE_DEVICE_TOKEN", "true")
	t.Setenv("ENABLE_RATE_LIMIT", "1")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=localhost user=guardapp dbname=guardapp")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, 2*time.Minute, cfg.PairCodeExpiration)
	assert.Equal(t, 8, cfg.PairCodeLength)
	assert.True(t, cfg.RequireDeviceToken)
	assert.True(t, cfg.EnableRateLimit)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "host=localhost user=guardapp dbname=guardapp", cfg.DatabaseDSN)
}

func TestLoad_SqliteDatabasePathFallback(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/guardapp-test.db")

	cfg := Load()
	assert.Equal(t, "/tmp/guardapp-test.db", cfg.DatabaseDSN)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PAIR_CODE_LENGTH", "six")
	t.Setenv("PAIR_CODE_EXPIRATION", "soon")

	cfg := Load()
	assert.Equal(t, 6, cfg.PairCodeLength)
	assert.Equal(t, 5*time.Minute, cfg.PairCodeExpiration)
}
