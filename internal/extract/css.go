// internal/extract/css.go
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/mirror-makers/replica/internal/cache"
	"github.com/mirror-makers/replica/internal/ratelimit"
	urlutil "github.com/mirror-makers/replica/internal/utils/url"
)

// DefaultStylesheetTimeout bounds each external stylesheet fetch.
const DefaultStylesheetTimeout = 10 * time.Second

// stylesheetCacheTTL is how long fetched stylesheet bodies stay cached.
const stylesheetCacheTTL = 5 * time.Minute

// Aggregator combines the CSS visible on a page into one corpus: the CSS
// already captured by the fetcher, inline <style> blocks, and the bodies of
// every linked external stylesheet. A failed stylesheet fetch is logged and
// skipped; it never aborts aggregation.
type Aggregator struct {
	client  *http.Client
	limiter ratelimit.RateLimiter
	cache   cache.Cache
	timeout time.Duration
}

// NewAggregator creates an Aggregator with dependency injection. A nil
// client gets a default with the stylesheet timeout; limiter and cache may
// be nil to disable pacing and caching.
func NewAggregator(client *http.Client, limiter ratelimit.RateLimiter, c cache.Cache) *Aggregator {
	if client == nil {
		client = &http.Client{Timeout: DefaultStylesheetTimeout}
	}
	return &Aggregator{
		client:  client,
		limiter: limiter,
		cache:   c,
		timeout: DefaultStylesheetTimeout,
	}
}

// Links returns the absolute URL of every <link rel="stylesheet"> target in
// document order.
func (a *Aggregator) Links(doc *goquery.Document, baseURL string) []string {
	links := []string{}
	doc.Find(`link[rel="stylesheet"]`).Each(func(i int, sel *goquery.Selection) {
		if href, exists := sel.Attr("href"); exists && href != "" {
			links = append(links, urlutil.ResolveURL(baseURL, href))
		}
	})
	return links
}

// Aggregate builds the CSS corpus. Order is deterministic: fetch-result CSS
// first, then <style> element text, then linked stylesheets as retrieved.
func (a *Aggregator) Aggregate(ctx context.Context, doc *goquery.Document, baseURL, fetchedCSS string) string {
	var parts []string

	if fetchedCSS != "" {
		parts = append(parts, fetchedCSS)
	}

	doc.Find("style").Each(func(i int, sel *goquery.Selection) {
		if text := sel.Text(); text != "" {
			parts = append(parts, text)
		}
	})

	for _, link := range a.Links(doc, baseURL) {
		body, err := a.fetchStylesheet(ctx, link)
		if err != nil {
			log.Warn().Err(err).Str("stylesheet", link).Msg("Failed to fetch stylesheet, skipping")
			continue
		}
		parts = append(parts, body)
	}

	return strings.Join(parts, "\n")
}

// fetchStylesheet retrieves one external stylesheet, consulting the cache
// and the per-domain rate limiter.
func (a *Aggregator) fetchStylesheet(ctx context.Context, cssURL string) (string, error) {
	if a.cache != nil {
		if body, ok := a.cache.Get(cssURL); ok {
			log.Debug().Str("stylesheet", cssURL).Msg("Stylesheet cache hit")
			return string(body), nil
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, cssURL); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, cssURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stylesheet fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stylesheet fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read stylesheet body: %w", err)
	}

	if a.cache != nil {
		_ = a.cache.Set(cssURL, body, stylesheetCacheTTL)
	}

	return string(body), nil
}
