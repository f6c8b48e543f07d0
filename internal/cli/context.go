// Package cli provides the command-line interface for the replica application.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mirror-makers/replica/internal/app"
)

// Global reference - cobra command contexts are not writable before Execute,
// so commands share the application through this package-level slot.
var globalApp *app.Application

// SetApp stores the Application for commands to access
func SetApp(cmd *cobra.Command, a *app.Application) {
	globalApp = a
}

// GetAppFromCmd retrieves the Application for the given command
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	return globalApp
}
