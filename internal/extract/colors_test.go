package extract

import (
	"fmt"
	"reflect"
	"testing"
)

func TestExtractColors_Normalization(t *testing.T) {
	css := `
	body { color: #FFF; }
	h1 { background-color: #A1B2C3; }
	p { border-color: rgb(12, 34, 56); }
	a { outline-color: rgba(255, 0, 0, 0.5); }
	`

	colors := ExtractColors(css)

	want := map[string]bool{
		"#ffffff": true,
		"#a1b2c3": true,
		"#0c2238": true,
		"#ff0000": true,
	}
	if len(colors) != len(want) {
		t.Fatalf("Expected %d colors, got %d: %v", len(want), len(colors), colors)
	}
	for _, c := range colors {
		if !want[c] {
			t.Errorf("Unexpected color %q", c)
		}
	}
}

func TestExtractColors_PropertyScoped(t *testing.T) {
	// Colors outside color-bearing property values must not be picked up.
	css := `
	/* decorative id: #abcdef */
	.widget { content: "#123456"; width: 10px; }
	.real { color: #112233; }
	`

	colors := ExtractColors(css)

	if !reflect.DeepEqual(colors, []string{"#112233"}) {
		t.Errorf("Expected only #112233, got %v", colors)
	}
}

func TestExtractColors_Deduplication(t *testing.T) {
	css := `
	a { color: #ABC; }
	b { background-color: #aabbcc; }
	c { border: 1px solid rgb(170, 187, 204); }
	`

	colors := ExtractColors(css)

	if !reflect.DeepEqual(colors, []string{"#aabbcc"}) {
		t.Errorf("Expected single deduplicated #aabbcc, got %v", colors)
	}
}

func TestExtractColors_Cap(t *testing.T) {
	css := ""
	for i := 0; i < 20; i++ {
		css += fmt.Sprintf(".c%d { color: #1122%02x; }\n", i, i)
	}

	colors := ExtractColors(css)

	if len(colors) != 8 {
		t.Errorf("Expected palette capped to 8, got %d", len(colors))
	}
}

func TestExtractColors_Sorted(t *testing.T) {
	css := `.a { color: #ffffff; } .b { color: #000000; }`

	colors := ExtractColors(css)

	if !reflect.DeepEqual(colors, []string{"#000000", "#ffffff"}) {
		t.Errorf("Expected sorted palette, got %v", colors)
	}
}

func TestExtractColors_Empty(t *testing.T) {
	colors := ExtractColors("body { margin: 0; }")
	if len(colors) != 0 {
		t.Errorf("Expected empty palette, got %v", colors)
	}
}
