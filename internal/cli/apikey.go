// internal/cli/apikey.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mirror-makers/replica/internal/auth"
)

// apikeyCmd groups the credential management subcommands
var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the generation API key",
	Long: `Stores the generation API key in the OS keyring, or in a restricted file
under your home directory on systems without one. The GEMINI_API_KEY
environment variable always takes precedence over the stored key.`,
}

var apikeySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store the generation API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.SaveAPIKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "API key stored")
		return nil
	},
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether a generation API key is configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := auth.LoadAPIKey()
		if err != nil {
			return fmt.Errorf("no API key configured")
		}
		fmt.Printf("API key configured (%s)\n", maskKey(key))
		return nil
	},
}

var apikeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored generation API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteAPIKey(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "API key removed")
		return nil
	},
}

func init() {
	apikeyCmd.AddCommand(apikeySetCmd, apikeyShowCmd, apikeyClearCmd)
	rootCmd.AddCommand(apikeyCmd)
}

// maskKey keeps only enough of the key to recognize it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
