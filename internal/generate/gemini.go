// Package generate turns a DesignContext into a static HTML/CSS rendition by
// prompting the Gemini generateContent API.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mirror-makers/replica/pkg/models"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"
	// DefaultBaseURL is the Gemini REST endpoint root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultGenerateTimeout bounds one generation round trip.
	DefaultGenerateTimeout = 120 * time.Second
)

// ErrNoValidHTML indicates the model responded but produced nothing usable.
var ErrNoValidHTML = fmt.Errorf("no valid HTML found in response")

var (
	fencedHTMLPattern = regexp.MustCompile("(?s)```html\n(.*?)\n```")
	stylePattern      = regexp.MustCompile(`(?s)<style>(.*?)</style>`)
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Options configures a generation client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewClient creates a generation client. Model and BaseURL default when
// empty; a nil HTTP client gets the default generation timeout.
func NewClient(opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: DefaultGenerateTimeout}
	}
	return &Client{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: opts.BaseURL,
		client:  opts.Client,
	}
}

// generateRequest mirrors the generateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse carries only the fields the parser reads.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate prompts the model with the design context and parses the returned
// page. The model is asked for a bare HTML file; markdown-fenced output is
// tolerated and unwrapped.
func (c *Client) Generate(ctx context.Context, dc *models.DesignContext) (*models.WebsiteCode, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("generation API key is not configured")
	}

	prompt, err := BuildPrompt(dc)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Str("model", c.model).Int("prompt_bytes", len(prompt)).Msg("Requesting website generation")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generation response has no candidates")
	}

	return parseGeneratedPage(parsed.Candidates[0].Content.Parts[0].Text)
}

// parseGeneratedPage extracts the HTML document from the model's text: a
// ```html fenced block when present, otherwise the whole text if it already
// starts as an HTML document. The embedded <style> body is pulled out
// separately for preview use.
func parseGeneratedPage(text string) (*models.WebsiteCode, error) {
	var htmlContent string

	if match := fencedHTMLPattern.FindStringSubmatch(text); match != nil {
		htmlContent = strings.TrimSpace(match[1])
	} else {
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "<!DOCTYPE html>") || strings.HasPrefix(trimmed, "<html>") {
			htmlContent = trimmed
		} else {
			return nil, ErrNoValidHTML
		}
	}

	cssContent := ""
	if match := stylePattern.FindStringSubmatch(htmlContent); match != nil {
		cssContent = strings.TrimSpace(match[1])
	}

	return &models.WebsiteCode{
		HTML: htmlContent,
		CSS:  cssContent,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
