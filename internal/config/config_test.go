package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./data/expenses.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.BcryptCost)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.GeneratedSecret)
	assert.Len(t, cfg.JWTSecret, 64)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"EXPENSE_TRACKER_ADDR":        ":9090",
		"EXPENSE_TRACKER_DB_PATH":     "/tmp/x.db",
		"EXPENSE_TRACKER_JWT_SECRET":  "fixed",
		"EXPENSE_TRACKER_TOKEN_TTL":   "30m",
		"EXPENSE_TRACKER_BCRYPT_COST": "12",
		"EXPENSE_TRACKER_CORS_ORIGIN": "https://app.example.com",
		"LOG_LEVEL":                   "debug",
	}})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "fixed", cfg.JWTSecret)
	assert.False(t, cfg.GeneratedSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	_, err := parse(env.Options{Environment: map[string]string{"EXPENSE_TRACKER_TOKEN_TTL": "soon"}})
	assert.Error(t, err)

	_, err = parse(env.Options{Environment: map[string]string{"EXPENSE_TRACKER_TOKEN_TTL": "-1h"}})
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("file values fill unset variables only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "EXPENSE_TRACKER_TEST_FROM_FILE=file\nEXPENSE_TRACKER_TEST_PRESET=file\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		t.Setenv("EXPENSE_TRACKER_TEST_PRESET", "process")
		t.Cleanup(func() { os.Unsetenv("EXPENSE_TRACKER_TEST_FROM_FILE") })

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "file", os.Getenv("EXPENSE_TRACKER_TEST_FROM_FILE"))
		assert.Equal(t, "process", os.Getenv("EXPENSE_TRACKER_TEST_PRESET"))
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=value\n"), 0o600))
		assert.Error(t, loadDotEnv(path))
	})
}
