package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 3, cfg.Features.MinOccurrences)
	assert.Equal(t, 0.05, cfg.Features.AmountTolerance)
	assert.Equal(t, 30, cfg.Features.NearbyWindowDays)
	assert.Equal(t, 1024, cfg.Features.DateCacheSize)
	assert.Equal(t, 4, cfg.Features.Workers)
	assert.Equal(t, "recurscan.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.API.AllowedOrigins)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Empty(t, cfg.Vendors.Phone)
}

func TestLoad_OverridesAndKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
features:
  min_occurrences: 4
  workers: 8
vendors:
  phone: ["mint mobile", "visible"]
storage:
  database_path: /tmp/features.db
observability:
  logging:
    level: debug
    format: json
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Features.MinOccurrences)
	assert.Equal(t, 8, cfg.Features.Workers)
	assert.Equal(t, 0.05, cfg.Features.AmountTolerance)
	assert.Equal(t, []string{"mint mobile", "visible"}, cfg.Vendors.Phone)
	assert.Equal(t, "/tmp/features.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 8080, cfg.API.Port)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_RECURSCAN_DB", "expanded.db")
	path := writeConfig(t, "storage:\n  database_path: ${TEST_RECURSCAN_DB}\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "expanded.db", cfg.Storage.DatabasePath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "features: [not, a, map")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RECURSCAN_DB_PATH", "test.db")
	t.Setenv("RECURSCAN_WORKERS", "2")
	t.Setenv("RECURSCAN_VENDORS_UTILITY", "power,water")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 2, cfg.Features.Workers)
	assert.Equal(t, []string{"power", "water"}, cfg.Vendors.Utility)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 3, cfg.Features.MinOccurrences)
}

func TestLoadFromEnv_InvalidNumber(t *testing.T) {
	t.Setenv("RECURSCAN_WORKERS", "many")

	_, err := LoadFromEnv()

	assert.Error(t, err)
}

func TestLoadOrEnvFrom_FallbackToEnv(t *testing.T) {
	t.Setenv("RECURSCAN_DB_PATH", "fallback.db")

	cfg, err := LoadOrEnvFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "fallback.db", cfg.Storage.DatabasePath)
}

func TestLoadOrEnvFrom_BrokenFileIsError(t *testing.T) {
	path := writeConfig(t, "features: [not, a, map")

	_, err := LoadOrEnvFrom(path)

	assert.Error(t, err)
}
