package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8214", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "inkwell", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "development", cfg.Env)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.TracingEnabled)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:      "8214",
			JWTSecret: "your-secret-key-change-in-production",
			DBSSLMode: "disable",
			Env:       "development",
		}
	}

	t.Run("Development defaults pass", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("Missing port", func(t *testing.T) {
		cfg := base()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Production rejects the default JWT secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "str0ng-password"

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "JWT_SECRET"))
	})

	t.Run("Production rejects a short JWT secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "short-secret"
		cfg.DBPassword = "str0ng-password"

		assert.Error(t, cfg.Validate())
	})

	t.Run("Production rejects the default DB password", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = strings.Repeat("s", 32)
		cfg.DBPassword = "password"

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "DB_PASSWORD"))
	})

	t.Run("Production with strong secrets passes", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = strings.Repeat("s", 32)
		cfg.DBPassword = "str0ng-password"
		cfg.DBSSLMode = "require"

		assert.NoError(t, cfg.Validate())
	})
}
