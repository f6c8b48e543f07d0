// internal/fetch/fallback.go
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mirror-makers/replica/pkg/models"
)

// DefaultFallbackTimeout bounds the plain-HTTP degradation path.
const DefaultFallbackTimeout = 15 * time.Second

// FallbackFetcher performs an unauthenticated plain HTTP GET when browser
// automation fails entirely. It accepts whatever HTML the server returns and
// yields empty CSS and no screenshot.
type FallbackFetcher struct {
	client    *http.Client
	userAgent string
}

// NewFallbackFetcher creates a FallbackFetcher around the given client.
// A nil client gets a default with the 15-second fallback timeout; an empty
// user agent falls back to the fixed browser string.
func NewFallbackFetcher(client *http.Client, userAgent string) *FallbackFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFallbackTimeout}
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &FallbackFetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// Name returns the name of this fetcher.
func (f *FallbackFetcher) Name() string {
	return "FallbackFetcher"
}

// Fetch performs a single GET with the fixed browser header set.
func (f *FallbackFetcher) Fetch(ctx context.Context, pageURL string) (*models.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: fallback received status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", resp.StatusCode).
		Int("html_bytes", len(body)).
		Msg("Fallback fetch completed")

	return &models.FetchResult{
		HTML: string(body),
		CSS:  "",
	}, nil
}
