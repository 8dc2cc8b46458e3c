package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("orbite %s\n", app.Version())
			cmd.Printf("commit: %s\n", app.Commit())
			cmd.Printf("built: %s\n", app.Date())
			cmd.Printf("built by: %s\n", app.BuiltBy())
			cmd.Printf("go version: %s\n", runtime.Version())
			cmd.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
