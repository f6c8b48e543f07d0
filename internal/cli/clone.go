// internal/cli/clone.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mirror-makers/replica/internal/auth"
	"github.com/mirror-makers/replica/internal/generate"
)

var (
	cloneOutputDir string
	cloneSplitCSS  bool
)

// cloneCmd represents the clone command
var cloneCmd = &cobra.Command{
	Use:   "clone <url>",
	Short: "Extract a page's design and regenerate it as a static site",
	Long: `Runs the full pipeline: extracts the design context of the page, prompts
the generation model with it, and writes the generated static site to disk.

Requires a generation API key; set one with "replica apikey set" or via the
GEMINI_API_KEY environment variable.`,
	Example: `  # Clone a page into ./clone/
  replica clone https://example.com

  # Clone into a specific directory with the CSS split into its own file
  replica clone https://example.com --output-dir=site --split-css

  # Use a different generation model
  replica clone https://example.com --model=gemini-2.5-pro`,
	Args: cobra.ExactArgs(1),
	RunE: runClone,
}

func init() {
	rootCmd.AddCommand(cloneCmd)

	cloneCmd.Flags().StringVarP(&cloneOutputDir, "output-dir", "d", "clone", "Directory to write the generated site into")
	cloneCmd.Flags().BoolVar(&cloneSplitCSS, "split-css", false, "Write the embedded CSS to a separate styles.css")
}

// cloneProgress wraps the step bar so the pipeline code stays readable when
// progress output is suppressed.
type cloneProgress struct {
	bar *progressbar.ProgressBar
}

func newCloneProgress(cmd *cobra.Command, steps int) *cloneProgress {
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonOut, _ := cmd.Flags().GetBool("json")
	if quiet || jsonOut {
		return &cloneProgress{}
	}
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
	return &cloneProgress{bar: bar}
}

func (p *cloneProgress) step(description string) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(description)
	_ = p.bar.Add(1)
}

func runClone(cmd *cobra.Command, args []string) error {
	appCtx := GetAppFromCmd(cmd)
	if appCtx == nil {
		return fmt.Errorf("application not initialized")
	}

	apiKey, err := auth.LoadAPIKey()
	if err != nil {
		return fmt.Errorf("generation API key required: %w (set one with \"replica apikey set\")", err)
	}

	pageURL := args[0]
	progress := newCloneProgress(cmd, 3)

	ctx, cancel := context.WithTimeout(cmd.Context(), appCtx.Config.NavigationTimeout*4+generate.DefaultGenerateTimeout)
	defer cancel()

	progress.step("Extracting design context")
	dc, err := appCtx.Extractor.ExtractDesignContext(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	progress.step("Generating static site")
	client := generate.NewClient(generate.Options{
		APIKey: apiKey,
		Model:  appCtx.Config.GeminiModel,
	})
	code, err := client.Generate(ctx, dc)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	progress.step("Writing output files")
	if err := os.MkdirAll(cloneOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	htmlPath := filepath.Join(cloneOutputDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(code.HTML), 0644); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}

	if cloneSplitCSS && code.CSS != "" {
		cssPath := filepath.Join(cloneOutputDir, "styles.css")
		if err := os.WriteFile(cssPath, []byte(code.CSS), 0644); err != nil {
			return fmt.Errorf("failed to write CSS: %w", err)
		}
	}

	log.Info().
		Str("url", pageURL).
		Str("output_dir", cloneOutputDir).
		Int("html_bytes", len(code.HTML)).
		Int("css_bytes", len(code.CSS)).
		Msg("Clone completed")

	fmt.Fprintf(os.Stderr, "Clone written to %s\n", htmlPath)
	return nil
}
