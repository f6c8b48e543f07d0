// internal/fetch/browser.go
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/mirror-makers/replica/internal/proxy"
	"github.com/mirror-makers/replica/internal/retry"
	"github.com/mirror-makers/replica/pkg/models"
)

// stealthScript suppresses the automation signals page scripts check for:
// the webdriver flag, an empty plugin list, and a bare language list.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {
	get: () => undefined
});

Object.defineProperty(navigator, 'plugins', {
	get: () => [1, 2, 3, 4, 5]
});

Object.defineProperty(navigator, 'languages', {
	get: () => ['en-US', 'en']
});
`

// styleSheetScript concatenates the rule text of every stylesheet whose
// rules are readable. Cross-origin sheets throw on access and are skipped.
const styleSheetScript = `(() => {
	const styleSheets = Array.from(document.styleSheets);
	return styleSheets
		.filter(sheet => {
			try {
				return sheet.cssRules !== null;
			} catch (e) {
				return false;
			}
		})
		.map(sheet => {
			return Array.from(sheet.cssRules)
				.map(rule => rule.cssText)
				.join('\n');
		})
		.join('\n');
})()`

// BrowserFetcher drives a headless Chrome instance per request. Each fetch
// gets its own allocator and browser context so no cookies or storage leak
// between extractions of different sites.
type BrowserFetcher struct {
	proxies     *proxy.Pool
	navTimeout  time.Duration
	idleWindow  time.Duration
	maxIdleWait time.Duration
	chromePath  string
}

// BrowserOptions configures a BrowserFetcher.
type BrowserOptions struct {
	Proxies     *proxy.Pool
	NavTimeout  time.Duration // per-attempt navigation timeout
	IdleWindow  time.Duration // network quiet window treated as quiescence
	MaxIdleWait time.Duration // upper bound on waiting for quiescence
	ChromePath  string        // explicit Chrome binary, or "" to auto-detect
}

// NewBrowserFetcher creates a BrowserFetcher with dependency injection.
func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.IdleWindow <= 0 {
		opts.IdleWindow = 500 * time.Millisecond
	}
	if opts.MaxIdleWait <= 0 {
		opts.MaxIdleWait = 10 * time.Second
	}
	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}
	return &BrowserFetcher{
		proxies:     opts.Proxies,
		navTimeout:  opts.NavTimeout,
		idleWindow:  opts.IdleWindow,
		maxIdleWait: opts.MaxIdleWait,
		chromePath:  chromePath,
	}
}

// Name returns the name of this fetcher.
func (f *BrowserFetcher) Name() string {
	return "BrowserFetcher"
}

// Fetch loads the URL in headless Chrome and captures HTML, computed CSS,
// and a full-page screenshot. Navigation is attempted up to three times with
// linear backoff on no-response, 403, and other error statuses; only a final
// 200 is accepted. Browser teardown is deferred on every path.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (result *models.FetchResult, err error) {
	start := time.Now()

	log.Debug().
		Str("url", pageURL).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	proxyAddr := ""
	if f.proxies != nil {
		proxyAddr = f.proxies.Next()
	}

	allocOpts := f.allocatorOptions(proxyAddr)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	defer func() {
		if err != nil && proxyAddr != "" {
			f.proxies.MarkFailure(proxyAddr)
		}
	}()

	// Track the main-document response status across navigation attempts.
	var statusMu sync.Mutex
	var statusCode int
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument {
				statusMu.Lock()
				statusCode = int(resp.Response.Status)
				statusMu.Unlock()
			}
		}
	})

	tracker := newInflightTracker(browserCtx)

	// Prepare the context before any navigation: network events on, stealth
	// script installed for every new document, realistic viewport + headers.
	err = chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		network.SetExtraHTTPHeaders(network.Headers(BrowserHeaders())),
		chromedp.EmulateViewport(ViewportWidth, ViewportHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare browser context: %w", err)
	}

	// Navigate under the retry policy: 3 attempts, 2s × attempt backoff.
	err = retry.WithRetry(ctx, retry.NavigationConfig(), func() error {
		statusMu.Lock()
		statusCode = 0
		statusMu.Unlock()

		attemptCtx, attemptCancel := context.WithTimeout(browserCtx, f.navTimeout)
		defer attemptCancel()

		if err := chromedp.Run(attemptCtx, chromedp.Navigate(pageURL)); err != nil {
			return fmt.Errorf("navigation failed: %w", err)
		}

		statusMu.Lock()
		status := statusCode
		statusMu.Unlock()

		switch {
		case status == 0:
			return fmt.Errorf("no response received from page")
		case status == http.StatusOK:
			return nil
		default:
			return retry.NewHTTPError(status, http.StatusText(status), "navigation rejected")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// Let the page settle before capture.
	if err := tracker.WaitIdle(browserCtx, f.idleWindow, f.maxIdleWait); err != nil {
		log.Warn().Err(err).Msg("Network did not reach quiescence, capturing anyway")
	}

	var screenshot []byte
	var htmlContent string
	var cssContent string

	captureCtx, captureCancel := context.WithTimeout(browserCtx, f.navTimeout)
	defer captureCancel()

	err = chromedp.Run(captureCtx,
		chromedp.FullScreenshot(&screenshot, 90),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
		chromedp.Evaluate(styleSheetScript, &cssContent),
	)
	if err != nil {
		return nil, fmt.Errorf("capture failed: %w", err)
	}

	log.Info().
		Str("url", pageURL).
		Int("html_bytes", len(htmlContent)).
		Int("css_bytes", len(cssContent)).
		Int("screenshot_bytes", len(screenshot)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetch completed")

	return &models.FetchResult{
		HTML:       htmlContent,
		CSS:        cssContent,
		Screenshot: screenshot,
	}, nil
}

// allocatorOptions builds the Chrome launch flags: headless with automation
// detection suppressed, plus the stability flag set.
func (f *BrowserFetcher) allocatorOptions(proxyAddr string) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-ipc-flooding-protection", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("force-color-profile", "srgb"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-features", "IsolateOrigins,site-per-process,TranslateUI"),
		chromedp.Flag("disable-site-isolation-trials", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disk-cache-size", "0"),
		chromedp.Flag("media-cache-size", "0"),
		chromedp.UserAgent(UserAgent),
	}

	if f.chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(f.chromePath)}, allocOpts...)
	}

	if proxyAddr != "" {
		log.Debug().Str("proxy", proxyAddr).Msg("Routing browser through proxy")
		allocOpts = append(allocOpts, chromedp.ProxyServer(proxyAddr))
	}

	return allocOpts
}
