package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_DIR",
		"DB_ENABLED", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"CATALOG_PATH", "GENAI_API_KEY", "GENAI_MODEL",
		"AGENT_HOURLY_BUDGET", "AGENT_CALL_TIMEOUT", "SYNC_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("LOG_LEVEL", "INFO")
		t.Setenv("DB_USER", "postgres")
		t.Setenv("DB_PASSWORD", "postgres")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_NAME", "stackgarden")
		t.Setenv("CATALOG_PATH", ConfigPathCatalog)
		t.Setenv("AGENT_HOURLY_BUDGET", "20")
		t.Setenv("AGENT_CALL_TIMEOUT", "3s")
		t.Setenv("SYNC_INTERVAL", "30s")
		t.Setenv("PORT", "8080")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.False(t, cfg.DBEnabled)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, ConfigPathCatalog, cfg.CatalogPath)
		assert.Equal(t, 20, cfg.AgentHourlyBudget)
		assert.Equal(t, 3*time.Second, cfg.AgentCallTimeout)
		assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DB_ENABLED", "true")
		t.Setenv("DB_USER", "customuser")
		t.Setenv("DB_PASSWORD", "custompass")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_NAME", "customdb")
		t.Setenv("CATALOG_PATH", "custom/catalog.json")
		t.Setenv("GENAI_API_KEY", "key123")
		t.Setenv("AGENT_HOURLY_BUDGET", "50")
		t.Setenv("AGENT_CALL_TIMEOUT", "5s")
		t.Setenv("SYNC_INTERVAL", "1m")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.DBEnabled)
		assert.Equal(t, "customuser", cfg.DBUser)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, "custom/catalog.json", cfg.CatalogPath)
		assert.Equal(t, "key123", cfg.GenAIAPIKey)
		assert.Equal(t, 50, cfg.AgentHourlyBudget)
		assert.Equal(t, 5*time.Second, cfg.AgentCallTimeout)
		assert.Equal(t, time.Minute, cfg.SyncInterval)
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("returns error for invalid AGENT_CALL_TIMEOUT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "8080")
		t.Setenv("AGENT_HOURLY_BUDGET", "20")
		t.Setenv("AGENT_CALL_TIMEOUT", "soon")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "AGENT_CALL_TIMEOUT")
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "h",
		DBPort:     "5432",
		DBName:     "d",
	}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.GetDBConnString())
}
