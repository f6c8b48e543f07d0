// internal/extract/fonts.go
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// genericFontKeywords are CSS generic families and global keywords that are
// not real font names; they are excluded case-insensitively.
var genericFontKeywords = map[string]struct{}{
	"serif":      {},
	"sans-serif": {},
	"monospace":  {},
	"cursive":    {},
	"fantasy":    {},
	"system-ui":  {},
	"inherit":    {},
	"initial":    {},
	"unset":      {},
}

var (
	cssFontPattern    = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}]+)`)
	inlineFontPattern = regexp.MustCompile(`(?i)font-family\s*:\s*([^;]+)`)
)

// ExtractFonts collects font-family names from the CSS corpus and from every
// element's inline style attribute. Names are stripped of whitespace and
// surrounding quotes, generic keywords are dropped, and the union of both
// passes is returned sorted.
func ExtractFonts(css string, doc *goquery.Document) []string {
	seen := make(map[string]struct{})

	for _, groups := range cssFontPattern.FindAllStringSubmatch(css, -1) {
		addFontNames(seen, groups[1])
	}

	if doc != nil {
		doc.Find("[style]").Each(func(i int, sel *goquery.Selection) {
			style, _ := sel.Attr("style")
			for _, groups := range inlineFontPattern.FindAllStringSubmatch(style, -1) {
				addFontNames(seen, groups[1])
			}
		})
	}

	fonts := make([]string, 0, len(seen))
	for font := range seen {
		fonts = append(fonts, font)
	}
	sort.Strings(fonts)
	return fonts
}

// addFontNames splits a font-family value list and records each usable name.
func addFontNames(seen map[string]struct{}, value string) {
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		name = strings.Trim(name, `'"`)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, generic := genericFontKeywords[strings.ToLower(name)]; generic {
			continue
		}
		seen[name] = struct{}{}
	}
}
