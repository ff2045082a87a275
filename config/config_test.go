package config_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-auth-api/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads defaults with only the secret set", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := config.LoadConfig()

		assert.NoError(t, err)
		assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, "HS256", cfg.Auth.SigningMethod)
		assert.Equal(t, "user", cfg.Auth.ContextKey)
		assert.Equal(t, "header:Authorization", cfg.Auth.TokenLookup)
		assert.Equal(t, "Bearer", cfg.Auth.AuthScheme)
		assert.Equal(t, 24, cfg.Auth.TokenExpiration)
		assert.Equal(t, "auth-api", cfg.Auth.Issuer)
		assert.Empty(t, cfg.Auth.Audience)
		assert.Equal(t, "3000", cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
		assert.False(t, cfg.Server.Debug)
	})

	t.Run("fails when the secret is missing", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		cfg, err := config.LoadConfig()

		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("applies overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("PORT", "8080")
		t.Setenv("TOKEN_EXPIRATION", "2")
		t.Setenv("JWT_ISSUER", "my-service")
		t.Setenv("JWT_AUDIENCE", "web, mobile")
		t.Setenv("STORE_TIMEOUT", "500ms")
		t.Setenv("DEBUG", "true")

		cfg, err := config.LoadConfig()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 2, cfg.Auth.TokenExpiration)
		assert.Equal(t, "my-service", cfg.Auth.Issuer)
		assert.Equal(t, []string{"web", "mobile"}, cfg.Auth.Audience)
		assert.Equal(t, 500*time.Millisecond, cfg.Store.Timeout)
		assert.True(t, cfg.Server.Debug)
	})

	t.Run("collects every problem in one error", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("TOKEN_EXPIRATION", "not-a-number")
		t.Setenv("STORE_TIMEOUT", "not-a-duration")

		cfg, err := config.LoadConfig()

		assert.Nil(t, cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "TOKEN_EXPIRATION")
		assert.Contains(t, err.Error(), "STORE_TIMEOUT")
	})
}

func TestAuthConfig_Getters(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_AUDIENCE", "web")

	cfg, err := config.LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.Auth.GetSigningKey())
	assert.Equal(t, "HS256", cfg.Auth.GetSigningMethod())
	assert.Equal(t, "user", cfg.Auth.GetContextKey())
	assert.Equal(t, 24, cfg.Auth.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", cfg.Auth.GetTokenLookup())
	assert.Equal(t, "Bearer", cfg.Auth.GetAuthScheme())
	assert.Equal(t, "auth-api", cfg.Auth.GetIssuer())
	assert.Equal(t, []string{"web"}, cfg.Auth.GetAudience())
}
