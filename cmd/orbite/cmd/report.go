package cmd

import (
	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
)

// NewReportCommand creates the report command.
func NewReportCommand(app appcontext.Interface) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: groupProjection,
		Short:   "Write a Markdown report of the dossier",
		Long: `Report writes a human-readable Markdown summary of the dossier:
identity, identifiers, the score breakdown, descriptions, the
ecosystem, social profiles, and the conflict journal.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			w, err := outputWriter(outPath)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := dossier.WriteReport(w); err != nil {
				return err
			}
			if outPath != "" {
				progressf(app, "wrote %s", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "file", "f", "", "write the report to a file instead of stdout")

	return cmd
}
