package config_test

import (
	"testing"
	"time"

	"github.com/FlightLedger/FL-Backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("LOG_PRETTY", "")
	t.Setenv("TEMPLATE_DIR", "")

	cfg := config.Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 6*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "templates", cfg.TemplateDir)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://example/flights")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173,https://flights.example.com")
	t.Setenv("LOG_PRETTY", "true")

	cfg := config.Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://example/flights", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://flights.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.LogPretty)
}

func TestValidate_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg := config.Load()
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingDatabaseURL)

	t.Setenv("DATABASE_URL", "postgres://example/flights")
	cfg = config.Load()
	assert.NoError(t, cfg.Validate())
}
