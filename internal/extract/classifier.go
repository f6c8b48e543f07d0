// internal/extract/classifier.go
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mirror-makers/replica/pkg/models"
)

// minConfidence is the floor below which a classification is discarded.
// Every current rule clears it; the threshold guards future rule additions.
const minConfidence = 0.6

// gridItemTerms are the class substrings that mark a repeated card-like
// element for product-grid detection.
var gridItemTerms = []string{"card", "product", "item", "grid-item"}

// elementStats summarizes a candidate element's contents for rule matching.
type elementStats struct {
	tag      string
	classes  string // lowercased class attribute
	links    int
	buttons  int // <button> elements plus anchors with a "btn" class
	images   int
	headings int // h1-h3
	textLen  int
}

// classifierRule pairs a predicate with a component builder. Rules are
// evaluated in order per element; the first match wins, so priority is
// explicit in the table below rather than buried in nested conditionals.
type classifierRule struct {
	match func(sel *goquery.Selection, st elementStats) bool
	build func(sel *goquery.Selection, st elementStats) models.Component
}

// classifierRules is the fixed rule priority: navbar, hero, product-grid,
// footer, features. The confidence constants were tuned empirically against
// real pages; keep them literal.
var classifierRules = []classifierRule{
	{match: matchNavbar, build: buildNavbar},
	{match: matchHero, build: buildHero},
	{match: matchProductGrid, build: buildProductGrid},
	{match: matchFooter, build: buildFooter},
	{match: matchFeatures, build: buildFeatures},
}

// ClassifyComponents scans every nav, header, main, section, footer, and div
// element in document order, classifies each against the rule table, and
// returns one component per recognized type: the first occurrence of a type
// contributes its description, later elements of the same type are dropped.
func ClassifyComponents(doc *goquery.Document) []models.Component {
	components := []models.Component{}
	seen := make(map[models.ComponentType]struct{})

	doc.Find("nav, header, main, section, footer, div").Each(func(i int, sel *goquery.Selection) {
		component, ok := classifyElement(sel)
		if !ok || component.Confidence < minConfidence {
			return
		}
		if _, dup := seen[component.Type]; dup {
			return
		}
		seen[component.Type] = struct{}{}
		components = append(components, component)
	})

	return components
}

// classifyElement runs the rule table against one element.
func classifyElement(sel *goquery.Selection) (models.Component, bool) {
	st := collectStats(sel)
	for _, rule := range classifierRules {
		if rule.match(sel, st) {
			return rule.build(sel, st), true
		}
	}
	return models.Component{}, false
}

// collectStats gathers the content counts the rules decide on.
func collectStats(sel *goquery.Selection) elementStats {
	class, _ := sel.Attr("class")

	buttons := sel.Find("button").Length()
	sel.Find("a").Each(func(i int, a *goquery.Selection) {
		if hasButtonClass(a) {
			buttons++
		}
	})

	return elementStats{
		tag:      goquery.NodeName(sel),
		classes:  strings.ToLower(class),
		links:    sel.Find("a").Length(),
		buttons:  buttons,
		images:   sel.Find("img").Length(),
		headings: sel.Find("h1, h2, h3").Length(),
		textLen:  len(strings.TrimSpace(sel.Text())),
	}
}

func classesContain(st elementStats, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(st.classes, sub) {
			return true
		}
	}
	return false
}

func matchNavbar(sel *goquery.Selection, st elementStats) bool {
	return st.tag == "nav" || classesContain(st, "nav", "header", "navbar")
}

func buildNavbar(sel *goquery.Selection, st elementStats) models.Component {
	confidence := 0.7
	if st.tag == "nav" {
		confidence = 0.9
	}
	description := fmt.Sprintf("Navbar with %d navigation links", st.links)
	if st.images > 0 {
		description += " and logo"
	}
	return models.Component{
		Type:        models.ComponentNavbar,
		Description: description,
		Confidence:  confidence,
	}
}

func matchHero(sel *goquery.Selection, st elementStats) bool {
	return classesContain(st, "hero", "banner", "jumbotron") ||
		(st.tag == "header" && st.headings > 0)
}

func buildHero(sel *goquery.Selection, st elementStats) models.Component {
	description := fmt.Sprintf("Hero section with %d heading(s)", st.headings)
	if st.buttons > 0 {
		description += fmt.Sprintf(" and %d call-to-action button(s)", st.buttons)
	}
	if st.images > 0 {
		description += " featuring hero image"
	}
	return models.Component{
		Type:        models.ComponentHero,
		Description: description,
		Confidence:  0.8,
	}
}

func matchProductGrid(sel *goquery.Selection, st elementStats) bool {
	count, _ := gridItems(sel)
	return count >= 3
}

func buildProductGrid(sel *goquery.Selection, st elementStats) models.Component {
	count, withImages := gridItems(sel)
	description := fmt.Sprintf("Grid of %d product/content cards", count)
	if withImages {
		description += " with images"
	}
	return models.Component{
		Type:        models.ComponentProductGrid,
		Description: description,
		Confidence:  0.7,
	}
}

// gridItems counts descendants whose class attribute contains a card-like
// term, and whether any of them contain an image.
func gridItems(sel *goquery.Selection) (count int, withImages bool) {
	sel.Find("[class]").Each(func(i int, item *goquery.Selection) {
		class, _ := item.Attr("class")
		lower := strings.ToLower(class)
		for _, term := range gridItemTerms {
			if strings.Contains(lower, term) {
				count++
				if item.Find("img").Length() > 0 {
					withImages = true
				}
				return
			}
		}
	})
	return count, withImages
}

func matchFooter(sel *goquery.Selection, st elementStats) bool {
	return st.tag == "footer" || classesContain(st, "footer")
}

func buildFooter(sel *goquery.Selection, st elementStats) models.Component {
	confidence := 0.7
	if st.tag == "footer" {
		confidence = 0.9
	}

	socialLinks := 0
	sel.Find("a[class]").Each(func(i int, a *goquery.Selection) {
		class, _ := a.Attr("class")
		if strings.Contains(strings.ToLower(class), "social") {
			socialLinks++
		}
	})

	description := fmt.Sprintf("Footer with %d links", st.links)
	if socialLinks > 0 {
		description += fmt.Sprintf(" including %d social media links", socialLinks)
	}
	return models.Component{
		Type:        models.ComponentFooter,
		Description: description,
		Confidence:  confidence,
	}
}

func matchFeatures(sel *goquery.Selection, st elementStats) bool {
	return classesContain(st, "features", "services") ||
		(st.tag == "section" && st.headings > 0)
}

func buildFeatures(sel *goquery.Selection, st elementStats) models.Component {
	return models.Component{
		Type:        models.ComponentFeatures,
		Description: fmt.Sprintf("Feature section with %d headings and %d images", st.headings, st.images),
		Confidence:  0.6,
	}
}
