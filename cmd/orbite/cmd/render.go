package cmd

import (
	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(app appcontext.Interface) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:     "render",
		GroupID: groupProjection,
		Short:   "Render the dossier as a radial SVG diagram",
		Long: `Render draws the authority diagram: the organization at the center,
identifiers on the inner ring, included relations on the middle ring,
and social profiles on the outer ring. The output is deterministic, so
the same dossier always produces byte-identical SVG.`,
		Args: cobra.NoArgs,
		Example: `  orbite render                   # SVG to stdout
  orbite render -f diagram.svg    # SVG to a file`,
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

			if _, err := w.Write([]byte(dossier.RenderDiagram())); err != nil {
				return err
			}
			if outPath != "" {
				progressf(app, "wrote %s", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "file", "f", "", "write the SVG to a file instead of stdout")

	return cmd
}
