package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	// 7 days unless overridden.
	assert.Equal(t, float64(7*24), cfg.JWT.TokenExpiry.Hours())
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Host)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRY_HOURS", "1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PORT", "15432")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, float64(1), cfg.JWT.TokenExpiry.Hours())
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15432, cfg.Database.Port)
}
