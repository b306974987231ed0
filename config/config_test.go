package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10, cfg.LoginRatePerMinute)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://portfolio.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite://portfolio.db", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unparseable duration", func(t *testing.T) {
		t.Setenv("JWT_EXPIRATION", "soon")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env")
	})

	t.Run("non-positive expiration", func(t *testing.T) {
		t.Setenv("JWT_EXPIRATION", "0s")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		t.Setenv("LOGIN_RATE_PER_MINUTE", "0")
		_, err := Load()
		require.Error(t, err)
	})
}
