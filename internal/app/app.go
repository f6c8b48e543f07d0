// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mirror-makers/replica/internal/cache"
	"github.com/mirror-makers/replica/internal/config"
	"github.com/mirror-makers/replica/internal/extract"
	"github.com/mirror-makers/replica/internal/fetch"
	"github.com/mirror-makers/replica/internal/proxy"
	"github.com/mirror-makers/replica/internal/ratelimit"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Cache       cache.Cache
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	ProxyPool   *proxy.Pool
	Browser     fetch.Fetcher
	Fallback    fetch.Fetcher
	Extractor   *extract.Extractor
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates and initializes the in-memory stylesheet cache
//   - Creates the rate limiter for per-domain stylesheet pacing
//   - Initializes the HTTP client with proper timeouts
//   - Builds the proxy pool, the browser and fallback fetchers, and the extractor
//
// If any step fails, an error is returned and no resources are allocated.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	// Treat "info" as non-verbose (don't display info logs unless -v is used)
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	// Create cache
	memCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
	logger.Debug().
		Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
		Msg("Memory cache initialized")

	// Create rate limiter
	rateLimiter := ratelimit.NewDomainLimiter(cfg.StylesheetRPS, cfg.StylesheetBurst)
	logger.Debug().
		Float64("rps", cfg.StylesheetRPS).
		Int("burst", cfg.StylesheetBurst).
		Msg("Rate limiter initialized")

	// Create HTTP client
	httpClient := &http.Client{
		Timeout: cfg.FallbackTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DisableKeepAlives:   false,
		},
	}
	logger.Debug().
		Dur("timeout", cfg.FallbackTimeout).
		Msg("HTTP client initialized")

	// Create proxy pool
	proxyPool := proxy.NewPool(cfg.Proxies)
	if proxyPool.Len() > 0 {
		logger.Debug().Int("proxies", proxyPool.Len()).Msg("Proxy pool initialized")
	}

	// Create fetchers and the extraction pipeline
	browser := fetch.NewBrowserFetcher(fetch.BrowserOptions{
		Proxies:    proxyPool,
		NavTimeout: cfg.NavigationTimeout,
		ChromePath: cfg.ChromePath,
	})
	fallback := fetch.NewFallbackFetcher(httpClient, cfg.UserAgent)
	aggregator := extract.NewAggregator(httpClient, rateLimiter, memCache)
	extractor := extract.NewExtractor(browser, fallback, aggregator)
	logger.Debug().Msg("Extraction pipeline initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Cache:       memCache,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		ProxyPool:   proxyPool,
		Browser:     browser,
		Fallback:    fallback,
		Extractor:   extractor,
		startTime:   time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// Close gracefully shuts down the application and all its resources.
//
// Any errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")

	// Close cache
	if a.Cache != nil {
		a.Cache.Close()
	}

	// Close HTTP client (connection pooling cleanup)
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
