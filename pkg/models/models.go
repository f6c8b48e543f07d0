package models

// FetchResult is the raw triple obtained from loading a URL: the serialized
// DOM, the CSS the browser could see at capture time, and an optional
// full-page PNG screenshot. It is built once per extraction request and is
// never shared across requests.
type FetchResult struct {
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	Screenshot []byte `json:"screenshot,omitempty"`
}

// ComponentType identifies a recognized page region.
type ComponentType string

const (
	ComponentNavbar      ComponentType = "navbar"
	ComponentHero        ComponentType = "hero"
	ComponentProductGrid ComponentType = "product-grid"
	ComponentFooter      ComponentType = "footer"
	ComponentFeatures    ComponentType = "features"
)

// Component is a classified page region with a heuristic confidence score.
// Confidence reflects rule-match strength, not a calibrated probability.
type Component struct {
	Type        ComponentType `json:"type"`
	Description string        `json:"description"`
	Confidence  float64       `json:"confidence"`
}

// TextSnippets groups the representative text content pulled from a page.
type TextSnippets struct {
	Headings   []string `json:"headings"`
	Paragraphs []string `json:"paragraphs"`
	Buttons    []string `json:"buttons"`
}

// Dimensions holds pixel dimensions of a raster image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ScreenshotSummary is the visual grounding derived from a page screenshot.
type ScreenshotSummary struct {
	Dimensions     Dimensions `json:"dimensions"`
	DominantColors []string   `json:"dominant_colors"`
	Base64Image    string     `json:"base64_image"`
}

// DesignContext is the structured description of a page handed to the
// generation model. List fields are always non-nil: a page with no styling
// yields empty containers, not an error.
type DesignContext struct {
	Title                 string             `json:"title"`
	Layout                []ComponentType    `json:"layout"`
	ColorPalette          []string           `json:"color_palette"`
	Fonts                 []string           `json:"fonts"`
	Images                []string           `json:"images"`
	TextSnippets          TextSnippets       `json:"text_snippets"`
	CSSLinks              []string           `json:"css_links"`
	RawHTMLSnippet        string             `json:"raw_html_snippet"`
	ComponentDescriptions []string           `json:"component_descriptions"`
	Screenshot            *ScreenshotSummary `json:"screenshot,omitempty"`
}

// WebsiteCode is the generation collaborator's output: a complete static
// HTML document and the CSS embedded in it (extracted for preview).
type WebsiteCode struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}
