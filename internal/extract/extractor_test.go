package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/mirror-makers/replica/pkg/models"
)

type stubFetcher struct {
	result *models.FetchResult
	err    error
	calls  int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*models.FetchResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubFetcher) Name() string { return "stub" }

const samplePage = `<html>
<head>
	<title>Acme Store</title>
	<style>body { color: #336699; font-family: Inter, sans-serif; }</style>
</head>
<body>
	<nav><a href="/">Home</a><a href="/shop">Shop</a></nav>
	<section class="hero"><h1>Everything you need</h1><a class="btn" href="#">Shop now</a></section>
	<footer><a href="/terms">Terms</a></footer>
	<img src="/banner.png">
</body>
</html>`

func TestExtractDesignContext(t *testing.T) {
	browser := &stubFetcher{result: &models.FetchResult{HTML: samplePage}}
	e := NewExtractor(browser, nil, NewAggregator(nil, nil, nil))

	dc, err := e.ExtractDesignContext(context.Background(), "https://acme.example.com")
	if err != nil {
		t.Fatalf("ExtractDesignContext failed: %v", err)
	}

	if dc.Title != "Acme Store" {
		t.Errorf("Expected title 'Acme Store', got %q", dc.Title)
	}
	wantLayout := []models.ComponentType{models.ComponentNavbar, models.ComponentHero, models.ComponentFooter}
	if len(dc.Layout) != len(wantLayout) {
		t.Fatalf("Expected layout %v, got %v", wantLayout, dc.Layout)
	}
	for i, typ := range wantLayout {
		if dc.Layout[i] != typ {
			t.Errorf("Layout position %d: expected %s, got %s", i, typ, dc.Layout[i])
		}
	}
	if len(dc.ComponentDescriptions) != len(dc.Layout) {
		t.Errorf("Descriptions and layout out of step: %d vs %d", len(dc.ComponentDescriptions), len(dc.Layout))
	}
	if len(dc.ColorPalette) != 1 || dc.ColorPalette[0] != "#336699" {
		t.Errorf("Expected palette [#336699], got %v", dc.ColorPalette)
	}
	if len(dc.Fonts) != 1 || dc.Fonts[0] != "Inter" {
		t.Errorf("Expected fonts [Inter], got %v", dc.Fonts)
	}
	if len(dc.Images) != 1 || dc.Images[0] != "https://acme.example.com/banner.png" {
		t.Errorf("Expected resolved banner image, got %v", dc.Images)
	}
	if dc.Screenshot != nil {
		t.Error("Expected no screenshot summary without capture data")
	}
}

func TestExtractDesignContext_InvalidURL(t *testing.T) {
	browser := &stubFetcher{result: &models.FetchResult{HTML: samplePage}}
	e := NewExtractor(browser, nil, NewAggregator(nil, nil, nil))

	if _, err := e.ExtractDesignContext(context.Background(), "ftp://example.com"); err == nil {
		t.Fatal("Expected validation error for non-http scheme")
	}
	if browser.calls != 0 {
		t.Errorf("Expected no fetch attempt on invalid URL, got %d", browser.calls)
	}
}

func TestExtractDesignContext_FallbackOnBrowserFailure(t *testing.T) {
	browser := &stubFetcher{err: errors.New("chrome crashed")}
	fallback := &stubFetcher{result: &models.FetchResult{HTML: samplePage}}
	e := NewExtractor(browser, fallback, NewAggregator(nil, nil, nil))

	dc, err := e.ExtractDesignContext(context.Background(), "https://acme.example.com")
	if err != nil {
		t.Fatalf("Expected fallback to rescue the extraction, got %v", err)
	}
	if fallback.calls != 1 {
		t.Errorf("Expected one fallback fetch, got %d", fallback.calls)
	}
	if dc.Title != "Acme Store" {
		t.Errorf("Expected title from fallback HTML, got %q", dc.Title)
	}
}

func TestExtractDesignContext_NoContent(t *testing.T) {
	browser := &stubFetcher{err: errors.New("chrome crashed")}
	fallback := &stubFetcher{err: errors.New("connection refused")}
	e := NewExtractor(browser, fallback, NewAggregator(nil, nil, nil))

	_, err := e.ExtractDesignContext(context.Background(), "https://acme.example.com")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("Expected ErrNoContent, got %v", err)
	}
}

func TestExtractDesignContext_NoFallbackConfigured(t *testing.T) {
	browser := &stubFetcher{err: errors.New("chrome crashed")}
	e := NewExtractor(browser, nil, NewAggregator(nil, nil, nil))

	_, err := e.ExtractDesignContext(context.Background(), "https://acme.example.com")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("Expected ErrNoContent without fallback, got %v", err)
	}
}

func TestExtractDesignContext_MinimalPage(t *testing.T) {
	browser := &stubFetcher{result: &models.FetchResult{HTML: "<html><body><p>hi</p></body></html>"}}
	e := NewExtractor(browser, nil, NewAggregator(nil, nil, nil))

	dc, err := e.ExtractDesignContext(context.Background(), "https://bare.example.com")
	if err != nil {
		t.Fatalf("Expected no error on a bare page, got %v", err)
	}

	if dc.Layout == nil || dc.ColorPalette == nil || dc.Fonts == nil || dc.Images == nil || dc.CSSLinks == nil {
		t.Error("Expected empty containers, got nil fields")
	}
	if len(dc.Layout) != 0 || len(dc.ColorPalette) != 0 {
		t.Errorf("Expected empty layout and palette, got %v / %v", dc.Layout, dc.ColorPalette)
	}
}
