package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
)

// NewExportCommand creates the export command.
func NewExportCommand(app appcontext.Interface) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: groupProjection,
		Short:   "Export the dossier state envelope",
		Long: `Export writes the versioned state envelope (entity, relations,
social links, conflict journal) exactly as the state file stores it,
suitable for backup or transfer to another machine.`,
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

			if err := dossier.Export(w); err != nil {
				return err
			}
			if outPath != "" {
				progressf(app, "wrote %s", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "file", "f", "", "write the envelope to a file instead of stdout")

	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "import <file>",
		GroupID: groupProjection,
		Short:   "Replace the dossier from an exported envelope",
		Long: `Import validates an exported state envelope and replaces the whole
dossier with it. A malformed or invalid envelope is rejected and the
current dossier stays untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := dossier.Import(f); err != nil {
				return err
			}
			if err := dossier.Save(); err != nil {
				return err
			}

			progressf(app, "imported %s, revision %d", args[0], dossier.Revision())
			return nil
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "reset",
		GroupID: groupDossier,
		Short:   "Clear the dossier",
		Long: `Reset clears the entity, relations, social links, and the conflict
journal, then saves the empty dossier over the state file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			dossier.Reset()
			if err := dossier.Save(); err != nil {
				return err
			}

			progressf(app, "dossier cleared")
			return nil
		},
	}
}
