package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Credential backends for the bearer token.
const (
	CredentialBackendDocument = "document"
	CredentialBackendKeyring  = "keyring"
)

// defaultLoginURL is the external browser-based authorization flow. The
// core never talks to it directly; it is only handed to the OS launcher.
const defaultLoginURL = "https://turkwopxapivcllruvzo.supabase.co/auth/v1/authorize" +
	"?provider=google&redirect_to=nostlichat://login-callback" +
	"&scopes=https://www.googleapis.com/auth/gmail.readonly%20https://www.googleapis.com/auth/gmail.send"

// ProviderConfig holds settings for the remote mail provider API.
type ProviderConfig struct {
	// BaseURL is the root of the provider's message REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the HTTP client timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// FetchLimit is how many recent messages a pull lists.
	FetchLimit int `mapstructure:"fetch_limit" yaml:"fetch_limit"`
}

// AuthConfig holds settings for the external authorization hand-off.
type AuthConfig struct {
	// LoginURL is opened in the system browser to begin login.
	LoginURL string `mapstructure:"login_url" yaml:"login_url"`

	// CredentialBackend selects where the bearer token is persisted:
	// "document" (inside the state file) or "keyring" (system keyring).
	CredentialBackend string `mapstructure:"credential_backend" yaml:"credential_backend"`
}

// ChatConfig holds conversation defaults.
type ChatConfig struct {
	// DefaultRoom is the room activated right after login.
	DefaultRoom string `mapstructure:"default_room" yaml:"default_room"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// DataDir overrides the platform user-data root. Empty means
	// $XDG_DATA_HOME (or ~/.local/share).
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Chat     ChatConfig     `mapstructure:"chat" yaml:"chat"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/nostlichat/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "nostlichat", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Provider: ProviderConfig{
			BaseURL:    "https://gmail.googleapis.com/gmail/v1/users/me",
			TimeoutSec: 30,
			FetchLimit: 10,
		},
		Auth: AuthConfig{
			LoginURL:          defaultLoginURL,
			CredentialBackend: CredentialBackendDocument,
		},
		Chat: ChatConfig{
			DefaultRoom: "General",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("provider.base_url", "https://gmail.googleapis.com/gmail/v1/users/me")
	v.SetDefault("provider.timeout_sec", 30)
	v.SetDefault("provider.fetch_limit", 10)
	v.SetDefault("auth.login_url", defaultLoginURL)
	v.SetDefault("auth.credential_backend", CredentialBackendDocument)
	v.SetDefault("chat.default_room", "General")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("provider", cfg.Provider)
	v.Set("auth", cfg.Auth)
	v.Set("chat", cfg.Chat)
	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
