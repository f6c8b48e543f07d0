package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Fetching
	NavigationTimeout time.Duration
	FallbackTimeout   time.Duration
	UserAgent         string
	ChromePath        string
	Proxies           []string

	// Stylesheet fetching
	StylesheetRPS   float64
	StylesheetBurst int

	// Caching
	CacheMaxSizeBytes int64

	// Generation
	GeminiModel string
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		NavigationTimeout: DefaultNavigationTimeout,
		FallbackTimeout:   DefaultFallbackTimeout,
		StylesheetRPS:     DefaultStylesheetRPS,
		StylesheetBurst:   DefaultStylesheetBurst,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
		GeminiModel:       DefaultGeminiModel,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("REPLICA_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("REPLICA_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("REPLICA_PROXY"); v != "" {
		cfg.Proxies = splitList(v)
	}
	if v := os.Getenv("REPLICA_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("chrome-path"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.ChromePath = s
			}
		}
		if f := cmd.Flags().Lookup("model"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.GeminiModel = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.NavigationTimeout = d
				}
			}
		}
		if proxies, err := cmd.Flags().GetStringSlice("proxy"); err == nil && len(proxies) > 0 {
			cfg.Proxies = proxies
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// splitList parses a comma-separated environment value.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
