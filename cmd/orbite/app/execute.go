package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the orbite CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "orbite",
		Short:   "Organization dossier CLI",
		Version: a.version,
		Long: `Orbite builds a canonical dossier for one organization by merging
records from Wikidata, the French INSEE registry, and generative
enrichment into a single entity with journaled conflicts.

The dossier persists to a local state file between commands and
projects as a radial SVG diagram, a schema.org JSON-LD document,
and a Markdown report.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "dossier",
		Title: "Dossier Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "projection",
		Title: "Projection Commands:",
	})

	// Accept underscored spellings of flag names (log_level == log-level)
	rootCmd.PersistentFlags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.orbite.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.config.State, "state", "", "dossier state file (default is ./orbite.json)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("orbite {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand,
	// so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")
	state := mustGetString(cmd, "state")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel, state)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Dossier commands
	rootCmd.AddCommand(a.NewSearchCommand())
	rootCmd.AddCommand(a.NewMergeCommand())
	rootCmd.AddCommand(a.NewEnrichCommand())
	rootCmd.AddCommand(a.NewSetCommand())
	rootCmd.AddCommand(a.NewRelationCommand())
	rootCmd.AddCommand(a.NewSocialCommand())
	rootCmd.AddCommand(a.NewShowCommand())
	rootCmd.AddCommand(a.NewScoreCommand())
	rootCmd.AddCommand(a.NewResetCommand())

	// Projection commands
	rootCmd.AddCommand(a.NewRenderCommand())
	rootCmd.AddCommand(a.NewJSONLDCommand())
	rootCmd.AddCommand(a.NewReportCommand())
	rootCmd.AddCommand(a.NewExportCommand())
	rootCmd.AddCommand(a.NewImportCommand())
	rootCmd.AddCommand(a.NewServeCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(a.NewManCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
