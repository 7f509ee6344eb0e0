package agents

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "arena-go"
	keyringAccount = "openrouter"
	apiKeyEnvVar   = "OPENROUTER_API_KEY"
)

// Keyring stores the model agent's API key in the OS keychain, with the
// environment variable taking precedence for headless runs.
type Keyring struct {
	service string
}

// NewKeyring creates a keyring accessor under the given service name;
// empty means the default service.
func NewKeyring(service string) *Keyring {
	if strings.TrimSpace(service) == "" {
		service = keyringService
	}
	return &Keyring{service: service}
}

// APIKey resolves the OpenRouter API key: environment first, then keychain.
func (k *Keyring) APIKey() (string, error) {
	if key := os.Getenv(apiKeyEnvVar); key != "" {
		return key, nil
	}
	key, err := keyring.Get(k.service, keyringAccount)
	if err != nil {
		return "", fmt.Errorf("no API key: set %s or store one in the keychain: %w", apiKeyEnvVar, err)
	}
	return key, nil
}

// SetAPIKey stores the API key in the OS keychain.
func (k *Keyring) SetAPIKey(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("refusing to store an empty API key")
	}
	return keyring.Set(k.service, keyringAccount, value)
}

// DeleteAPIKey removes the stored API key.
func (k *Keyring) DeleteAPIKey() error {
	return keyring.Delete(k.service, keyringAccount)
}
