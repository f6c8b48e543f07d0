package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultNavigationTimeout = 30 * time.Second
	DefaultFallbackTimeout   = 15 * time.Second
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultStylesheetRPS     = 5.0
	DefaultStylesheetBurst   = 10
	DefaultCacheMaxSizeBytes = 50 * 1024 * 1024 // 50MB
	DefaultMaxProxyPoolSize  = 50
)
