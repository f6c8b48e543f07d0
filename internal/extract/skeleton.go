// internal/extract/skeleton.go
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractSkeleton rebuilds every semantic layout element (header, main,
// footer, nav, section) as an empty shell keeping only its tag name and
// attributes, with an ellipsis placeholder for content, and serializes the
// shells inside one wrapping <div>. The result is a compact structural
// fingerprint that carries no page text.
func ExtractSkeleton(doc *goquery.Document) string {
	wrapper := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	}

	doc.Find("header, main, footer, nav, section").Each(func(i int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node == nil {
			return
		}

		shell := &html.Node{
			Type: html.ElementNode,
			Data: node.Data,
			Attr: append([]html.Attribute(nil), node.Attr...),
		}
		shell.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: "...",
		})
		wrapper.AppendChild(shell)
	})

	var sb strings.Builder
	if err := html.Render(&sb, wrapper); err != nil {
		return "<div></div>"
	}
	return sb.String()
}
