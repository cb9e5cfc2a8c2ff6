package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/portfolio")
	t.Setenv("NAV_API_URL", "http://nav.local")
	t.Setenv("NAV_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Jwt.Secret)
	assert.Equal(t, "postgres://localhost:5432/portfolio", cfg.DB.Url)
	assert.Equal(t, "http://nav.local", cfg.Nav.ApiUrl)
	assert.Equal(t, 5*time.Minute, cfg.Nav.CacheTTL)

	// Defaults.
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.Nav.HTTPTimeout)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := Load()
	assert.Error(t, err)
}
