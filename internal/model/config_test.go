package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://gmail.googleapis.com/gmail/v1/users/me", cfg.Provider.BaseURL)
	assert.Equal(t, 30, cfg.Provider.TimeoutSec)
	assert.Equal(t, 10, cfg.Provider.FetchLimit)
	assert.Equal(t, CredentialBackendDocument, cfg.Auth.CredentialBackend)
	assert.Equal(t, "General", cfg.Chat.DefaultRoom)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.Chat.DefaultRoom = "Work"
	cfg.Provider.FetchLimit = 25
	cfg.Auth.CredentialBackend = CredentialBackendKeyring

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Work", loaded.Chat.DefaultRoom)
	assert.Equal(t, 25, loaded.Provider.FetchLimit)
	assert.Equal(t, CredentialBackendKeyring, loaded.Auth.CredentialBackend)

	// Untouched keys keep their defaults.
	assert.Equal(t, 30, loaded.Provider.TimeoutSec)
}
