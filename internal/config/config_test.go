package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.DB.URL)
	assert.Equal(t, "teahigh", cfg.Telemetry.ServiceName)
	assert.Equal(t, 60, cfg.RateLimit.PerMinute)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.True(t, cfg.Seed)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("TEAHIGH_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("TEAHIGH_RATELIMIT_BURST", "3")
	t.Setenv("TEAHIGH_SEED", "false")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.False(t, cfg.Seed)
}

func TestLoadConfigFile(t *testing.T) {
	dir := inTempDir(t)
	yaml := "server:\n  addr: \":7070\"\ntelemetry:\n  service_name: tea-dev\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "tea-dev", cfg.Telemetry.ServiceName)
}

func TestLoadDotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEAHIGH_RATELIMIT_PER_MINUTE=120\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TEAHIGH_RATELIMIT_PER_MINUTE") })

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	inTempDir(t)
	t.Setenv("TEAHIGH_RATELIMIT_PER_MINUTE", "-1")

	_, err := Load(New())
	assert.ErrorContains(t, err, "ratelimit.per_minute")
}

func TestLoadRejectsZeroBurstWhileLimiting(t *testing.T) {
	inTempDir(t)
	t.Setenv("TEAHIGH_RATELIMIT_BURST", "0")

	_, err := Load(New())
	assert.ErrorContains(t, err, "ratelimit.burst")
}

func TestLoadAcceptsDisabledRateLimit(t *testing.T) {
	inTempDir(t)
	t.Setenv("TEAHIGH_RATELIMIT_PER_MINUTE", "0")
	t.Setenv("TEAHIGH_RATELIMIT_BURST", "0")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Zero(t, cfg.RateLimit.PerMinute)
}
