package app

import (
	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/cmd/orbite/cmd"
)

// NewSearchCommand creates the search command with app dependencies.
func (a *App) NewSearchCommand() *cobra.Command {
	return cmd.NewSearchCommand(a)
}

// NewMergeCommand creates the merge command with app dependencies.
func (a *App) NewMergeCommand() *cobra.Command {
	return cmd.NewMergeCommand(a)
}

// NewEnrichCommand creates the enrich command with app dependencies.
func (a *App) NewEnrichCommand() *cobra.Command {
	return cmd.NewEnrichCommand(a)
}

// NewSetCommand creates the set command with app dependencies.
func (a *App) NewSetCommand() *cobra.Command {
	return cmd.NewSetCommand(a)
}

// NewRelationCommand creates the relation command with app dependencies.
func (a *App) NewRelationCommand() *cobra.Command {
	return cmd.NewRelationCommand(a)
}

// NewSocialCommand creates the social command with app dependencies.
func (a *App) NewSocialCommand() *cobra.Command {
	return cmd.NewSocialCommand(a)
}

// NewShowCommand creates the show command with app dependencies.
func (a *App) NewShowCommand() *cobra.Command {
	return cmd.NewShowCommand(a)
}

// NewScoreCommand creates the score command with app dependencies.
func (a *App) NewScoreCommand() *cobra.Command {
	return cmd.NewScoreCommand(a)
}

// NewResetCommand creates the reset command with app dependencies.
func (a *App) NewResetCommand() *cobra.Command {
	return cmd.NewResetCommand(a)
}

// NewRenderCommand creates the render command with app dependencies.
func (a *App) NewRenderCommand() *cobra.Command {
	return cmd.NewRenderCommand(a)
}

// NewJSONLDCommand creates the jsonld command with app dependencies.
func (a *App) NewJSONLDCommand() *cobra.Command {
	return cmd.NewJSONLDCommand(a)
}

// NewReportCommand creates the report command with app dependencies.
func (a *App) NewReportCommand() *cobra.Command {
	return cmd.NewReportCommand(a)
}

// NewExportCommand creates the export command with app dependencies.
func (a *App) NewExportCommand() *cobra.Command {
	return cmd.NewExportCommand(a)
}

// NewImportCommand creates the import command with app dependencies.
func (a *App) NewImportCommand() *cobra.Command {
	return cmd.NewImportCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return cmd.NewServeCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return cmd.NewVersionCommand(a)
}

// NewManCommand creates the man command.
func (a *App) NewManCommand() *cobra.Command {
	return cmd.NewManCommand()
}
