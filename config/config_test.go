package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("JWT_REFRESH_SECRET", "r-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dugout", cfg.AppName)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, "duckdb", cfg.AnalyticsDriver)
	assert.Equal(t, 5, cfg.TopDefaultLimit)
	assert.Equal(t, 20, cfg.TopMaxLimit)
}

func TestLoadFailsWithoutAccessSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "r-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoadFailsWithoutRefreshSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
}

func TestLoadRejectsUnknownAnalyticsDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("ANALYTICS_DRIVER", "mongodb")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANALYTICS_DRIVER")
}

func TestBigQueryDriverRequiresProject(t *testing.T) {
	setRequired(t)
	t.Setenv("ANALYTICS_DRIVER", "bigquery")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("BIGQUERY_PROJECT", "demo-project")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bigquery", cfg.AnalyticsDriver)
}

func TestPostgresDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "dugout_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@localhost:5432/dugout_test?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins())
}
