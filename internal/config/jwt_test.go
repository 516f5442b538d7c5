package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
}

func TestJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name          string
		expiration    string
		expectedHours int
		wantErr       bool
	}{
		{"one hour", "1", 1, false},
		{"one week", "168", 168, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"not a number", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := jwtConfigFrom(envMap(map[string]string{
				"JWT_SECRET":           "secret",
				"JWT_EXPIRATION_HOURS": tt.expiration,
			}))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestJWTConfig_MissingSecret(t *testing.T) {
	_, err := jwtConfigFrom(envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}
