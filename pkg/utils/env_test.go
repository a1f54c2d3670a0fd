package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvPrefix(t *testing.T) {
	t.Cleanup(func() { SetEnvPrefix("") })

	t.Setenv("PUMP_SIGNAL_CONFIG_TYPE", "mse")
	t.Setenv("PUMP_SIGNAL_CONFIG_FILE_PATH", "/etc/pump/config.toml")

	assert.Equal(t, CONFIG_FILE, GetConfigType())

	SetEnvPrefix("pump_signal")
	assert.Equal(t, CONFIG_MSE, GetConfigType())
	assert.Equal(t, "/etc/pump/config.toml", GetConfigFilePath())
}

func TestGetStack(t *testing.T) {
	assert.Contains(t, string(GetStack()), "TestGetStack")
}
