// Package config loads runtime settings from environment variables, with
// support for required values, defaults, and collective error reporting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AuthConfig holds token issuance and validation settings.
type AuthConfig struct {
	JWTSecret       string
	SigningMethod   string
	ContextKey      string
	TokenLookup     string
	AuthScheme      string
	TokenExpiration int
	Issuer          string
	Audience        []string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        string
	CORSOrigins string
	Debug       bool
}

// StoreConfig holds credential store settings.
type StoreConfig struct {
	DSN     string
	Timeout time.Duration
}

// AppConfig is the top-level configuration for the service.
type AppConfig struct {
	Auth   *AuthConfig
	Server *ServerConfig
	Store  *StoreConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s'", key, valueStr))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s'", key, valueStr))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig reads and validates all environment variables, collecting every
// problem before failing so a broken deployment reports the full list at once.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenExpiration := getOptionalEnvInt("TOKEN_EXPIRATION", 24, &errs)

	authConfig := &AuthConfig{
		JWTSecret:       jwtSecret,
		SigningMethod:   "HS256",
		ContextKey:      getOptionalEnv("AUTH_CONTEXT_KEY", "user"),
		TokenLookup:     getOptionalEnv("AUTH_TOKEN_LOOKUP", "header:Authorization"),
		AuthScheme:      getOptionalEnv("AUTH_SCHEME", "Bearer"),
		TokenExpiration: tokenExpiration,
		Issuer:          getOptionalEnv("JWT_ISSUER", "auth-api"),
		Audience:        splitAndTrim(getOptionalEnv("JWT_AUDIENCE", "")),
	}

	serverConfig := &ServerConfig{
		Port:        getOptionalEnv("PORT", "3000"),
		CORSOrigins: getOptionalEnv("CORS_ORIGINS", "*"),
		Debug:       getOptionalEnvBool("DEBUG", false),
	}

	storeConfig := &StoreConfig{
		DSN:     getOptionalEnv("DB_DSN", "file:auth.db?cache=shared&_pragma=foreign_keys(1)"),
		Timeout: getOptionalEnvDuration("STORE_TIMEOUT", 5*time.Second, &errs),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Auth:   authConfig,
		Server: serverConfig,
		Store:  storeConfig,
	}, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetSigningKey returns the HMAC signing secret.
func (c *AuthConfig) GetSigningKey() string { return c.JWTSecret }

// GetSigningMethod returns the JWT signing algorithm.
func (c *AuthConfig) GetSigningMethod() string { return c.SigningMethod }

// GetContextKey returns the request-local key holding validated claims.
func (c *AuthConfig) GetContextKey() string { return c.ContextKey }

// GetTokenExpiration returns the token lifetime in hours.
func (c *AuthConfig) GetTokenExpiration() int { return c.TokenExpiration }

// GetTokenLookup returns the token extraction spec.
func (c *AuthConfig) GetTokenLookup() string { return c.TokenLookup }

// GetAuthScheme returns the Authorization header scheme.
func (c *AuthConfig) GetAuthScheme() string { return c.AuthScheme }

// GetIssuer returns the iss claim set on issued tokens.
func (c *AuthConfig) GetIssuer() string { return c.Issuer }

// GetAudience returns the aud claim set on issued tokens.
func (c *AuthConfig) GetAudience() []string { return c.Audience }
