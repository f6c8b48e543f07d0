package config

import "fmt"

func validate(c *Config) error {
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.FallbackTimeout <= 0 {
		return fmt.Errorf("fallback timeout must be > 0")
	}
	if c.StylesheetRPS <= 0 || c.StylesheetBurst <= 0 {
		return fmt.Errorf("stylesheet rate limit must be > 0")
	}
	if c.CacheMaxSizeBytes <= 0 {
		return fmt.Errorf("cache max size must be > 0")
	}
	if len(c.Proxies) > DefaultMaxProxyPoolSize {
		return fmt.Errorf("proxy pool size must be at most %d", DefaultMaxProxyPoolSize)
	}
	return nil
}
