package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "nostlichat"

// tokenKey is the keyring entry holding the provider bearer token.
const tokenKey = "bearer-token"

// Vault stores the bearer token outside the state document. The
// keyring-backed implementation is selected by the auth.credential_backend
// config; tests substitute an in-memory fake.
type Vault interface {
	GetToken() (string, error)
	SetToken(value string) error
	DeleteToken() error
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/nostlichat/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("nostlichat-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// KeyringVault stores the token in the system keyring.
type KeyringVault struct{}

// GetToken retrieves the bearer token from the system keyring.
func (KeyringVault) GetToken() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", tokenKey, err)
	}

	return string(item.Data), nil
}

// SetToken stores the bearer token in the system keyring.
func (KeyringVault) SetToken(value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", tokenKey, err)
	}

	return nil
}

// DeleteToken removes the bearer token from the system keyring.
func (KeyringVault) DeleteToken() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(tokenKey)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", tokenKey, err)
	}

	return nil
}
