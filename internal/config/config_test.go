package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_ENV":                "test",
		"APP_PORT":               "8080",
		"STOCK_ROOT":             t.TempDir(),
		"DB_USER":                "stock",
		"DB_HOST":                "localhost",
		"DB_PORT":                "3306",
		"DB_NAME":                "stock",
		"JWT_SECRET":             "secret",
		"ACCESS_TOKEN_TTL_MIN":   "15",
		"OPERATOR_USER":          "ops",
		"OPERATOR_PASSWORD_HASH": "$2a$10$abc",
	} {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("QUEUE_ENABLED", "off")
	t.Setenv("RABBITMQ_URL", "amqp://rabbit:5672/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.False(t, cfg.QueueEnabled)
	assert.Equal(t, "amqp://rabbit:5672/", cfg.RabbitURL)
	assert.Equal(t, "logs", cfg.ReportLogDir)
	assert.True(t, filepath.IsAbs(cfg.StockRoot))
}

func TestLoadReportsEveryProblem(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing JWT_SECRET")
	assert.Contains(t, err.Error(), `invalid int for ACCESS_TOKEN_TTL_MIN: "soon"`)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STOCKCTL_TEST_A=from-file\nSTOCKCTL_TEST_B=from-file\n"), 0o600))
	t.Setenv("STOCKCTL_TEST_B", "from-env")
	t.Cleanup(func() { os.Unsetenv("STOCKCTL_TEST_A") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("STOCKCTL_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("STOCKCTL_TEST_B"))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "3s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 3*time.Second, cfg.RefillInterval)
	assert.Equal(t, 15*time.Second, cfg.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 5*time.Minute, cfg.TTL)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	assert.Equal(t, "cache:6380", LoadRedisConfig().Addr)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", LoadRedisConfig().Addr)
}

func TestLogger(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))

	var buf bytes.Buffer
	NewLogger(&buf, "prod", "warn").Info("hidden")
	NewLogger(&buf, "prod", "warn").Warn("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(&buf, "dev", "info").Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
