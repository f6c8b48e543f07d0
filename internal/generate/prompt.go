// internal/generate/prompt.go
package generate

import (
	"encoding/json"
	"fmt"

	"github.com/mirror-makers/replica/pkg/models"
)

const promptPreamble = `You are an expert front-end web developer tasked with recreating a static HTML and CSS version of a web page, using a structured design context provided to you.

Your output must:
- Reproduce the layout and visual style described as closely as possible.
- Use only **vanilla HTML and CSS** (no JS, React, or Tailwind).
- Prioritize semantic HTML5 tags (e.g., <nav>, <header>, <section>, <footer>, etc.).
- Use clean, maintainable class names and include embedded styles in a <style> block inside <head>.
- Include the provided images and headings in the correct layout blocks (hero, grid, footer, etc.).
- Match the font families and color palette closely.

Only output the complete HTML file — do not include comments, explanations, or markdown formatting.

Below is the structured design context for a webpage. Use this data to generate a full static HTML + CSS clone.

Design Context:
`

// BuildPrompt renders the generation prompt with the design context embedded
// as indented JSON. The raw screenshot payload is dropped first: the base64
// body of a full-page capture would dwarf the rest of the prompt, while the
// dimensions and dominant colors carry the useful signal.
func BuildPrompt(dc *models.DesignContext) (string, error) {
	trimmed := *dc
	if dc.Screenshot != nil {
		summary := *dc.Screenshot
		summary.Base64Image = ""
		trimmed.Screenshot = &summary
	}

	data, err := json.MarshalIndent(&trimmed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize design context: %w", err)
	}

	return promptPreamble + string(data), nil
}
