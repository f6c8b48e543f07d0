// internal/cli/extract.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var extractOutput string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract the design context of a web page",
	Long: `Loads the page in headless Chrome (falling back to plain HTTP when the
browser cannot reach it), aggregates its CSS, classifies its layout regions,
and prints the resulting design context as JSON.`,
	Example: `  # Print the design context to stdout
  replica extract https://example.com

  # Save it to a file
  replica extract https://example.com --output=context.json

  # Run through a proxy with a longer navigation timeout
  replica extract https://example.com --proxy=http://localhost:8080 --timeout=60s`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "File path to save the design context JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	appCtx := GetAppFromCmd(cmd)
	if appCtx == nil {
		return fmt.Errorf("application not initialized")
	}

	pageURL := args[0]
	log.Info().Str("url", pageURL).Msg("Extracting design context")

	ctx, cancel := context.WithTimeout(cmd.Context(), appCtx.Config.NavigationTimeout*4)
	defer cancel()

	dc, err := appCtx.Extractor.ExtractDesignContext(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := json.MarshalIndent(dc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize design context: %w", err)
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Design context saved to %s\n", extractOutput)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
