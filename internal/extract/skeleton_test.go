package extract

import (
	"strings"
	"testing"
)

func TestExtractSkeleton(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<header class="top"><h1>Site</h1></header>
		<nav id="menu"><a href="/">Home</a></nav>
		<section class="hero"><p>Secret marketing copy</p></section>
		<footer>fine print</footer>
	</body></html>`)

	skeleton := ExtractSkeleton(doc)

	if !strings.HasPrefix(skeleton, "<div>") || !strings.HasSuffix(skeleton, "</div>") {
		t.Errorf("Expected a single wrapping div, got %q", skeleton)
	}
	for _, want := range []string{
		`<header class="top">...</header>`,
		`<nav id="menu">...</nav>`,
		`<section class="hero">...</section>`,
		`<footer>...</footer>`,
	} {
		if !strings.Contains(skeleton, want) {
			t.Errorf("Expected skeleton to contain %q, got %q", want, skeleton)
		}
	}
	if strings.Contains(skeleton, "Secret marketing copy") {
		t.Error("Skeleton must not carry page text")
	}
}

func TestExtractSkeleton_NoLayoutElements(t *testing.T) {
	doc := docFromHTML(t, `<html><body><div><p>plain</p></div></body></html>`)

	if skeleton := ExtractSkeleton(doc); skeleton != "<div></div>" {
		t.Errorf("Expected empty wrapper, got %q", skeleton)
	}
}
