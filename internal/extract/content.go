// internal/extract/content.go
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	urlutil "github.com/mirror-makers/replica/internal/utils/url"
	"github.com/mirror-makers/replica/pkg/models"
)

const (
	// maxImages caps the image URL list.
	maxImages = 10
	// maxParagraphs is how many <p> elements are inspected, in document order.
	maxParagraphs = 10
	// minParagraphLength filters out tiny paragraphs (labels, captions).
	minParagraphLength = 20
)

// ExtractTitle returns the trimmed text of the <title> element, or "" if
// the document has none.
func ExtractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractImages returns the absolute URL of every <img> src, deduplicated in
// first-seen order during a single traversal, capped to ten entries.
func ExtractImages(doc *goquery.Document, baseURL string) []string {
	images := []string{}
	seen := make(map[string]struct{})

	doc.Find("img").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		src, exists := sel.Attr("src")
		if !exists || src == "" {
			return true
		}
		absolute := urlutil.ResolveURL(baseURL, src)
		if _, dup := seen[absolute]; dup {
			return true
		}
		seen[absolute] = struct{}{}
		images = append(images, absolute)
		return len(images) < maxImages
	})

	return images
}

// ExtractTextSnippets pulls the representative text of a page: headings
// (h1-h3), the first ten paragraphs longer than twenty characters, and
// button labels (<button> text plus anchors whose class contains "btn"),
// all in document order.
func ExtractTextSnippets(doc *goquery.Document) models.TextSnippets {
	snippets := models.TextSnippets{
		Headings:   []string{},
		Paragraphs: []string{},
		Buttons:    []string{},
	}

	doc.Find("h1, h2, h3").Each(func(i int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			snippets.Headings = append(snippets.Headings, text)
		}
	})

	inspected := 0
	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		inspected++
		if text := strings.TrimSpace(sel.Text()); len(text) > minParagraphLength {
			snippets.Paragraphs = append(snippets.Paragraphs, text)
		}
		return inspected < maxParagraphs
	})

	doc.Find("button, a").Each(func(i int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "a" && !hasButtonClass(sel) {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			snippets.Buttons = append(snippets.Buttons, text)
		}
	})

	return snippets
}

// hasButtonClass reports whether any class token of the selection contains
// "btn", case-insensitively.
func hasButtonClass(sel *goquery.Selection) bool {
	class, exists := sel.Attr("class")
	if !exists {
		return false
	}
	for _, token := range strings.Fields(class) {
		if strings.Contains(strings.ToLower(token), "btn") {
			return true
		}
	}
	return false
}
