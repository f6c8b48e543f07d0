// Package extract turns a fetched page into a DesignContext: the structured
// layout, styling, and content description handed to the generation model.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/mirror-makers/replica/internal/fetch"
	urlutil "github.com/mirror-makers/replica/internal/utils/url"
	"github.com/mirror-makers/replica/pkg/models"
)

// ErrNoContent indicates no content was obtainable by any fetch path.
// No partial DesignContext is fabricated in that case.
var ErrNoContent = errors.New("no content obtainable from URL")

// Extractor runs the full design-context pipeline for one URL at a time.
// The sub-extractors are pure functions over fetched data; the only shared
// mutable state is the proxy pool inside the browser fetcher.
type Extractor struct {
	browser  fetch.Fetcher
	fallback fetch.Fetcher
	css      *Aggregator
}

// NewExtractor creates an Extractor with dependency injection. The fallback
// fetcher may be nil to disable plain-HTTP degradation.
func NewExtractor(browser, fallback fetch.Fetcher, css *Aggregator) *Extractor {
	return &Extractor{
		browser:  browser,
		fallback: fallback,
		css:      css,
	}
}

// ExtractDesignContext validates the URL, fetches the page (degrading to the
// plain-HTTP fallback when browser automation fails entirely), and assembles
// the DesignContext. Missing optional substructure (no stylesheets, no
// images, no screenshot) yields empty containers, never an error.
func (e *Extractor) ExtractDesignContext(ctx context.Context, pageURL string) (*models.DesignContext, error) {
	if err := urlutil.ValidateURL(pageURL); err != nil {
		return nil, err
	}

	result, err := e.browser.Fetch(ctx, pageURL)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("Browser fetch failed, falling back to plain HTTP")
		if e.fallback == nil {
			return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
		}
		result, err = e.fallback.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	cssLinks := e.css.Links(doc, pageURL)
	corpus := e.css.Aggregate(ctx, doc, pageURL, result.CSS)

	components := ClassifyComponents(doc)
	layout := make([]models.ComponentType, 0, len(components))
	descriptions := make([]string, 0, len(components))
	for _, component := range components {
		layout = append(layout, component.Type)
		descriptions = append(descriptions, component.Description)
	}

	dc := &models.DesignContext{
		Title:                 ExtractTitle(doc),
		Layout:                layout,
		ColorPalette:          ExtractColors(corpus),
		Fonts:                 ExtractFonts(corpus, doc),
		Images:                ExtractImages(doc, pageURL),
		TextSnippets:          ExtractTextSnippets(doc),
		CSSLinks:              cssLinks,
		RawHTMLSnippet:        ExtractSkeleton(doc),
		ComponentDescriptions: descriptions,
	}

	if len(result.Screenshot) > 0 {
		summary, err := SummarizeScreenshot(result.Screenshot)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to summarize screenshot, omitting")
		} else {
			dc.Screenshot = summary
		}
	}

	log.Info().
		Str("url", pageURL).
		Str("title", dc.Title).
		Int("components", len(dc.Layout)).
		Int("colors", len(dc.ColorPalette)).
		Int("fonts", len(dc.Fonts)).
		Int("images", len(dc.Images)).
		Bool("screenshot", dc.Screenshot != nil).
		Msg("Design context extracted")

	return dc, nil
}
