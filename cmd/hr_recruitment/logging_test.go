package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_JSON tests the default JSON handler and level filtering
func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "json", "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "candidate_id", "c-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "hr-recruitment", line["service"])
	assert.Equal(t, "c-1", line["candidate_id"])
}

// TestNewLogger_Text tests the text handler
func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "text", "debug")
	require.NoError(t, err)

	logger.Debug("stage changed")

	assert.Contains(t, buf.String(), `msg="stage changed"`)
}

// TestNewLogger_BadLevel tests that an unknown level is rejected
func TestNewLogger_BadLevel(t *testing.T) {
	_, err := newLogger(&bytes.Buffer{}, "json", "loud")
	assert.Error(t, err)
}

// TestCommands tests that every subcommand is registered
func TestCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "create-staff", "create-skill", "create-department"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

// TestCatalogName tests the name check shared by the catalog commands
func TestCatalogName(t *testing.T) {
	name, err := catalogName("  Go  ")
	require.NoError(t, err)
	assert.Equal(t, "Go", name)

	_, err = catalogName("   ")
	assert.Error(t, err)
	_, err = catalogName(strings.Repeat("x", 101))
	assert.Error(t, err)
}

// TestMaintenanceCommandsNeedDatabaseURL tests that commands fail before connecting
func TestMaintenanceCommandsNeedDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := connectDB(createSkillCmd)
	assert.ErrorContains(t, err, "DATABASE_URL")
}
