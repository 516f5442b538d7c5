// Package config loads the recruitment service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
)

type lookupFunc func(string) string

var osEnv lookupFunc = os.Getenv

// Log formats accepted by LOG_FORMAT.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the full service configuration.
type Config struct {
	DatabaseURL   string
	Port          int
	RedisURL      string // empty disables event publishing
	LogFormat     string
	LogLevel      string
	StatusPolicy  recruitment.OverridePolicy
	ApplyPerHour  int // public applications per client IP per hour; 0 disables the limit
	AllowedOrigin string
	JWT           *JWTConfig
	Password      *PasswordConfig
}

// Load reads and validates the configuration from the process environment.
func Load() (*Config, error) {
	return load(osEnv)
}

func load(env lookupFunc) (*Config, error) {
	dbURL := env("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port, err := intOr(env, "PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", port)
	}

	policy, err := recruitment.ParseOverridePolicy(env("STATUS_OVERRIDE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_OVERRIDE_POLICY: %w", err)
	}

	logFormat := strings.ToLower(stringOr(env, "LOG_FORMAT", LogFormatJSON))
	if logFormat != LogFormatJSON && logFormat != LogFormatText {
		return nil, fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", LogFormatJSON, LogFormatText, logFormat)
	}

	perHour, err := intOr(env, "PUBLIC_APPLY_RATE_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	if perHour < 0 {
		return nil, fmt.Errorf("PUBLIC_APPLY_RATE_LIMIT must be non-negative, got: %d", perHour)
	}

	jwtCfg, err := jwtConfigFrom(env)
	if err != nil {
		return nil, err
	}
	pwCfg, err := passwordConfigFrom(env)
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:   dbURL,
		Port:          port,
		RedisURL:      env("REDIS_URL"),
		LogFormat:     logFormat,
		LogLevel:      strings.ToLower(stringOr(env, "LOG_LEVEL", "info")),
		StatusPolicy:  policy,
		ApplyPerHour:  perHour,
		AllowedOrigin: stringOr(env, "CORS_ALLOWED_ORIGIN", "*"),
		JWT:           jwtCfg,
		Password:      pwCfg,
	}, nil
}
