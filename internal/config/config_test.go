package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
)

func envMap(m map[string]string) lookupFunc {
	return func(key string) string { return m[key] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL": "postgres://hr:hr@localhost:5432/hr?sslmode=disable",
		"JWT_SECRET":   "test-secret-key",
	}
}

// TestLoad_Defaults tests that optional settings fall back to their defaults.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envMap(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, recruitment.PolicyBypass, cfg.StatusPolicy)
	assert.Equal(t, 20, cfg.ApplyPerHour)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, "hr-recruitment", cfg.JWT.Issuer)
	assert.Equal(t, 12, cfg.Password.BcryptCost)
}

// TestLoad_Overrides tests that every setting is read from the environment.
func TestLoad_Overrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = "9090"
	env["REDIS_URL"] = "redis://localhost:6379/0"
	env["LOG_FORMAT"] = "TEXT"
	env["LOG_LEVEL"] = "debug"
	env["STATUS_OVERRIDE_POLICY"] = "guarded"
	env["PUBLIC_APPLY_RATE_LIMIT"] = "0"
	env["CORS_ALLOWED_ORIGIN"] = "https://careers.example.com"
	env["JWT_EXPIRATION_HOURS"] = "8"
	env["BCRYPT_COST"] = "10"
	env["PASSWORD_PEPPER"] = "pepper"

	cfg, err := load(envMap(env))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, recruitment.PolicyGuarded, cfg.StatusPolicy)
	assert.Equal(t, 0, cfg.ApplyPerHour)
	assert.Equal(t, "https://careers.example.com", cfg.AllowedOrigin)
	assert.Equal(t, 8, cfg.JWT.ExpirationHours)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
	assert.Equal(t, "pepper", cfg.Password.Pepper)
}

// TestLoad_Errors tests that invalid settings fail fast.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"missing database url", "DATABASE_URL", "", "DATABASE_URL"},
		{"missing jwt secret", "JWT_SECRET", "", "JWT_SECRET"},
		{"port not a number", "PORT", "http", "PORT"},
		{"port out of range", "PORT", "70000", "PORT"},
		{"unknown policy", "STATUS_OVERRIDE_POLICY", "anything_goes", "STATUS_OVERRIDE_POLICY"},
		{"unknown log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"negative rate limit", "PUBLIC_APPLY_RATE_LIMIT", "-1", "PUBLIC_APPLY_RATE_LIMIT"},
		{"zero expiration", "JWT_EXPIRATION_HOURS", "0", "JWT_EXPIRATION_HOURS"},
		{"bad expiration", "JWT_EXPIRATION_HOURS", "a day", "JWT_EXPIRATION_HOURS"},
		{"bcrypt cost too low", "BCRYPT_COST", "9", "bcrypt cost"},
		{"bcrypt cost too high", "BCRYPT_COST", "15", "bcrypt cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			env[tt.key] = tt.value

			cfg, err := load(envMap(env))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// TestLoad_ProcessEnvironment tests that Load reads the real environment.
func TestLoad_ProcessEnvironment(t *testing.T) {
	for k, v := range baseEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("PORT", "8181")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Port)
}
