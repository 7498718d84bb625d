package credential

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
)

const serviceName = "todolists"

// Keys under which values are stored.
const (
	APIKeyKey        = "api-key"
	loginEmailKey    = "login-email"
	loginPasswordKey = "login-password"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = keyring.ErrKeyNotFound

// Keyring stores secrets in the system keyring, falling back to an
// encrypted file under the config directory.
type Keyring struct {
	ring keyring.Keyring
}

// Open returns a Keyring whose file backend lives in configDir.
func Open(configDir string) (*Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("todolists-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Keyring{ring: ring}, nil
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Keyring {
	return &Keyring{ring: ring}
}

// Get retrieves a credential value by key.
func (k *Keyring) Get(key string) (string, error) {
	item, err := k.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (k *Keyring) Set(key, value string) error {
	err := k.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key. Missing keys are not an error.
func (k *Keyring) Delete(key string) error {
	err := k.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// APIKey returns the stored API key.
func (k *Keyring) APIKey() (string, error) {
	return k.Get(APIKeyKey)
}

// SetAPIKey stores the API key.
func (k *Keyring) SetAPIKey(value string) error {
	return k.Set(APIKeyKey, value)
}

// SaveLogin remembers the credentials of a user who asked to be
// remembered.
func (k *Keyring) SaveLogin(email, password string) error {
	if err := k.Set(loginEmailKey, email); err != nil {
		return err
	}
	return k.Set(loginPasswordKey, password)
}

// ForgetLogin removes remembered credentials.
func (k *Keyring) ForgetLogin() error {
	return errors.Join(k.Delete(loginEmailKey), k.Delete(loginPasswordKey))
}

// Remembered returns the remembered credentials, if any.
func (k *Keyring) Remembered() (email, password string, ok bool) {
	email, err := k.Get(loginEmailKey)
	if err != nil || email == "" {
		return "", "", false
	}
	password, err = k.Get(loginPasswordKey)
	if err != nil {
		return "", "", false
	}
	return email, password, true
}
