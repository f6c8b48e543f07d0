// internal/extract/colors.go
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxPaletteSize caps the returned color palette.
const maxPaletteSize = 8

// colorProperties are the CSS properties whose values are scanned for
// colors. Scoping the scan to property values avoids false positives from
// hex-like strings in comments or unrelated values.
var colorProperties = []string{
	"color:", "background-color:", "border-color:",
	"box-shadow:", "text-shadow:", "outline-color:",
	"border:", "background:", "border-top-color:",
	"border-right-color:", "border-bottom-color:",
	"border-left-color:",
}

var (
	propertyValuePatterns = compilePropertyPatterns()

	hex3Pattern = regexp.MustCompile(`#[0-9a-fA-F]{3}\b`)
	hex6Pattern = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)
	rgbPattern  = regexp.MustCompile(`rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	rgbaPattern = regexp.MustCompile(`rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*[\d.]+\s*\)`)
)

func compilePropertyPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(colorProperties))
	for _, prop := range colorProperties {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(prop)+`[^;}]+`))
	}
	return patterns
}

// ExtractColors scans the CSS corpus for colors in color-bearing property
// values and returns them as lowercase #rrggbb hex strings, deduplicated,
// sorted, and capped to eight entries. Recognized forms: #RGB, #RRGGBB,
// rgb(r,g,b), and rgba(r,g,b,a) with alpha ignored.
func ExtractColors(css string) []string {
	seen := make(map[string]struct{})

	for _, propPattern := range propertyValuePatterns {
		for _, value := range propPattern.FindAllString(css, -1) {
			for _, hex := range hex6Pattern.FindAllString(value, -1) {
				seen[strings.ToLower(hex)] = struct{}{}
			}
			for _, hex := range hex3Pattern.FindAllString(value, -1) {
				seen[expandShortHex(strings.ToLower(hex))] = struct{}{}
			}
			for _, groups := range rgbPattern.FindAllStringSubmatch(value, -1) {
				if hex, ok := rgbToHex(groups[1], groups[2], groups[3]); ok {
					seen[hex] = struct{}{}
				}
			}
			for _, groups := range rgbaPattern.FindAllStringSubmatch(value, -1) {
				if hex, ok := rgbToHex(groups[1], groups[2], groups[3]); ok {
					seen[hex] = struct{}{}
				}
			}
		}
	}

	colors := make([]string, 0, len(seen))
	for color := range seen {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	if len(colors) > maxPaletteSize {
		colors = colors[:maxPaletteSize]
	}
	return colors
}

// expandShortHex converts #rgb to #rrggbb. The input is already lowercase.
func expandShortHex(hex string) string {
	return fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
}

// rgbToHex converts decimal channel strings to #rrggbb, clamping each
// channel to the 0-255 range.
func rgbToHex(r, g, b string) (string, bool) {
	channels := [3]int{}
	for i, s := range []string{r, g, b} {
		n, err := strconv.Atoi(s)
		if err != nil {
			return "", false
		}
		if n > 255 {
			n = 255
		}
		channels[i] = n
	}
	return fmt.Sprintf("#%02x%02x%02x", channels[0], channels[1], channels[2]), true
}
