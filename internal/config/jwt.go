package config

import (
	"fmt"
	"strconv"
)

// JWTConfig holds configuration for staff token issuing and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a JWT configuration from the process environment.
// JWT_SECRET is required; JWT_EXPIRATION_HOURS defaults to 24.
func NewJWTConfig() (*JWTConfig, error) {
	return jwtConfigFrom(osEnv)
}

func jwtConfigFrom(env lookupFunc) (*JWTConfig, error) {
	hours, err := intOr(env, "JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg := &JWTConfig{
		Secret:          env("JWT_SECRET"),
		ExpirationHours: hours,
		Issuer:          stringOr(env, "JWT_ISSUER", "hr-recruitment"),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

func intOr(env lookupFunc, key string, def int) (int, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func stringOr(env lookupFunc, key, def string) string {
	if v := env(key); v != "" {
		return v
	}
	return def
}
