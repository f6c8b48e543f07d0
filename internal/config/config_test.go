package config

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.NavigationTimeout != DefaultNavigationTimeout {
		t.Errorf("Expected default navigation timeout, got %v", cfg.NavigationTimeout)
	}
	if cfg.GeminiModel != DefaultGeminiModel {
		t.Errorf("Expected default model, got %q", cfg.GeminiModel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REPLICA_CHROME_PATH", "/opt/chrome")
	t.Setenv("REPLICA_PROXY", "http://p1:8080, http://p2:8080")
	t.Setenv("REPLICA_GEMINI_MODEL", "gemini-test")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ChromePath != "/opt/chrome" {
		t.Errorf("Expected chrome path from env, got %q", cfg.ChromePath)
	}
	if len(cfg.Proxies) != 2 || cfg.Proxies[0] != "http://p1:8080" || cfg.Proxies[1] != "http://p2:8080" {
		t.Errorf("Expected two proxies from env, got %v", cfg.Proxies)
	}
	if cfg.GeminiModel != "gemini-test" {
		t.Errorf("Expected model from env, got %q", cfg.GeminiModel)
	}
}

func TestLoad_FlagOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd)
	if err := cmd.PersistentFlags().Set("verbose", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.PersistentFlags().Set("timeout", "45s"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.PersistentFlags().Set("model", "gemini-flag"); err != nil {
		t.Fatal(err)
	}
	// Merge persistent flags into cmd.Flags(), as cobra does during Execute.
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug log level from --verbose, got %q", cfg.LogLevel)
	}
	if cfg.NavigationTimeout.Seconds() != 45 {
		t.Errorf("Expected 45s timeout from flag, got %v", cfg.NavigationTimeout)
	}
	if cfg.GeminiModel != "gemini-flag" {
		t.Errorf("Expected model from flag, got %q", cfg.GeminiModel)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	cfg := &Config{
		NavigationTimeout: 0,
		FallbackTimeout:   DefaultFallbackTimeout,
		StylesheetRPS:     DefaultStylesheetRPS,
		StylesheetBurst:   DefaultStylesheetBurst,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected validation error for zero timeout")
	}
}
