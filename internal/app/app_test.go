package app

import (
	"context"
	"testing"

	"github.com/mirror-makers/replica/internal/config"
)

func TestNew(t *testing.T) {
	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.Proxies = []string{"http://localhost:8080"}

	application, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer application.Close(context.Background())

	if application.Cache == nil {
		t.Error("Expected cache to be initialized")
	}
	if application.RateLimiter == nil {
		t.Error("Expected rate limiter to be initialized")
	}
	if application.Extractor == nil {
		t.Error("Expected extractor to be initialized")
	}
	if application.ProxyPool.Len() != 1 {
		t.Errorf("Expected one proxy in pool, got %d", application.ProxyPool.Len())
	}
	if application.Uptime() < 0 {
		t.Error("Expected non-negative uptime")
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(context.Background(), nil); err == nil {
		t.Error("Expected error for nil config")
	}
}
