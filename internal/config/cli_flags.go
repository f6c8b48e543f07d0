package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format only")
	cmd.PersistentFlags().StringSlice("proxy", nil, "Proxy server for browser traffic (repeatable)")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for page navigation")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent for plain-HTTP fallback requests")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium binary")
	cmd.PersistentFlags().String("model", "", "Generation model name")
}
