package cmd

import (
	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
)

// NewJSONLDCommand creates the jsonld command.
func NewJSONLDCommand(app appcontext.Interface) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "jsonld",
		GroupID: groupProjection,
		Short:   "Project the dossier as schema.org JSON-LD",
		Long: `Jsonld emits a schema.org Organization document for the entity.
Absent values are omitted rather than emitted as null, and included
relations appear as subOrganization entries.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			doc, err := dossier.JSONLD()
			if err != nil {
				return err
			}

			w, err := outputWriter(outPath)
			if err != nil {
				return err
			}
			defer w.Close()

			if _, err := w.Write(append(doc, '\n')); err != nil {
				return err
			}
			if outPath != "" {
				progressf(app, "wrote %s", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "file", "f", "", "write the document to a file instead of stdout")

	return cmd
}
