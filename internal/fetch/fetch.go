// Package fetch loads a target page and captures the raw material for
// design-context extraction: serialized DOM, visible CSS, and a full-page
// screenshot.
package fetch

import (
	"context"
	"errors"

	"github.com/mirror-makers/replica/pkg/models"
)

// Fetcher retrieves a page's content. Implementations must release every
// resource they acquire on all exit paths, including errors.
type Fetcher interface {
	// Fetch loads the URL and returns its content, or an error if no
	// acceptable response was obtained.
	Fetch(ctx context.Context, url string) (*models.FetchResult, error)

	// Name returns the name of the fetcher implementation.
	Name() string
}

// ErrFetchFailed indicates navigation exhausted its retry budget without a
// 200 response.
var ErrFetchFailed = errors.New("failed to load page")

// Browser emulation constants shared by both fetch paths. The fixed Chrome
// user agent and header set keep requests indistinguishable from a desktop
// browser session.
const (
	ViewportWidth  = 1280
	ViewportHeight = 800
	UserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// BrowserHeaders is the extra header set sent with browser navigation.
func BrowserHeaders() map[string]interface{} {
	return map[string]interface{}{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}
}
