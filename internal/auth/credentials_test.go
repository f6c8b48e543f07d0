package auth

import (
	"os"
	"path/filepath"
	"testing"
)

// forceFileStorage redirects credential storage to a temp home directory so
// tests never touch the real keyring.
func forceFileStorage(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CI", "true")
	t.Setenv("GEMINI_API_KEY", "")

	fileBased := true
	fileBasedStorageCache = &fileBased
	t.Cleanup(func() { fileBasedStorageCache = nil })

	return home
}

func TestSaveAndLoadAPIKey(t *testing.T) {
	home := forceFileStorage(t)

	if err := SaveAPIKey("  sk-test-123  "); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	key, err := LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey failed: %v", err)
	}
	if key != "sk-test-123" {
		t.Errorf("Expected trimmed key 'sk-test-123', got %q", key)
	}

	info, err := os.Stat(filepath.Join(home, FallbackDir, APIKeyName))
	if err != nil {
		t.Fatalf("Expected credential file, got %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestSaveAPIKey_RejectsEmpty(t *testing.T) {
	forceFileStorage(t)

	if err := SaveAPIKey("   "); err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestLoadAPIKey_EnvOverride(t *testing.T) {
	forceFileStorage(t)
	t.Setenv("GEMINI_API_KEY", "sk-from-env")

	if err := SaveAPIKey("sk-stored"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}

	key, err := LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey failed: %v", err)
	}
	if key != "sk-from-env" {
		t.Errorf("Expected environment key to win, got %q", key)
	}
}

func TestLoadAPIKey_NotConfigured(t *testing.T) {
	forceFileStorage(t)

	if _, err := LoadAPIKey(); err == nil {
		t.Error("Expected error when no key is stored")
	}
}

func TestDeleteAPIKey(t *testing.T) {
	forceFileStorage(t)

	if err := SaveAPIKey("sk-test"); err != nil {
		t.Fatalf("SaveAPIKey failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey failed: %v", err)
	}
	if _, err := LoadAPIKey(); err == nil {
		t.Error("Expected load to fail after delete")
	}

	// Deleting again is a no-op.
	if err := DeleteAPIKey(); err != nil {
		t.Errorf("Expected idempotent delete, got %v", err)
	}
}
