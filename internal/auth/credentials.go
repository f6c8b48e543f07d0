// internal/auth/credentials.go
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "replica-cli"
	// APIKeyName is the keyring entry holding the generation API key
	APIKeyName = "gemini-api-key"
	// FallbackDir is the directory for file-based credential storage (when keyring fails)
	FallbackDir = ".replica"
	// apiKeyEnv overrides stored credentials when set
	apiKeyEnv = "GEMINI_API_KEY"
)

// useFileBasedStorage checks if we should use file-based storage
// This is a fallback for environments where keyring isn't available (Codespaces, CI)
var fileBasedStorageCache *bool

func useFileBasedStorage() bool {
	if fileBasedStorageCache != nil {
		return *fileBasedStorageCache
	}

	if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
		result := true
		fileBasedStorageCache = &result
		return true
	}

	testKey := "_test_keyring_access_"
	err := keyring.Set(KeyringService, testKey, "test")
	result := (err != nil)
	fileBasedStorageCache = &result

	if !result {
		keyring.Delete(KeyringService, testKey)
	}

	return result
}

// getCredentialDir returns the credential storage directory
func getCredentialDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, FallbackDir)
	return dir, os.MkdirAll(dir, 0700)
}

// getCredentialPath returns the file path for a stored credential
func getCredentialPath(name string) (string, error) {
	dir, err := getCredentialDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// SaveAPIKey stores the generation API key in the OS keyring, or a 0600 file
// under the home directory when no keyring is available.
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if useFileBasedStorage() {
		path, err := getCredentialPath(APIKeyName)
		if err != nil {
			return fmt.Errorf("failed to get credential path: %w", err)
		}
		if err := os.WriteFile(path, []byte(key), 0600); err != nil {
			return fmt.Errorf("failed to save credential file: %w", err)
		}
		return nil
	}

	if err := keyring.Set(KeyringService, APIKeyName, key); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}

	return nil
}

// LoadAPIKey retrieves the generation API key. The GEMINI_API_KEY environment
// variable takes precedence over stored credentials.
func LoadAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(apiKeyEnv)); key != "" {
		return key, nil
	}

	if useFileBasedStorage() {
		path, err := getCredentialPath(APIKeyName)
		if err != nil {
			return "", fmt.Errorf("failed to get credential path: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("no API key configured: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	key, err := keyring.Get(KeyringService, APIKeyName)
	if err != nil {
		return "", fmt.Errorf("no API key configured: %w", err)
	}

	return key, nil
}

// DeleteAPIKey removes the stored generation API key.
func DeleteAPIKey() error {
	if useFileBasedStorage() {
		path, err := getCredentialPath(APIKeyName)
		if err != nil {
			return fmt.Errorf("failed to get credential path: %w", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete credential file: %w", err)
		}
		return nil
	}

	if err := keyring.Delete(KeyringService, APIKeyName); err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}

	return nil
}
