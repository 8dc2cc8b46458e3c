package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/cli"
)

// NewScoreCommand creates the score command.
func NewScoreCommand(app appcontext.Interface) *cobra.Command {
	var breakdown bool

	cmd := &cobra.Command{
		Use:     "score",
		GroupID: groupDossier,
		Short:   "Show the dossier's authority score",
		Long: `Score computes the authority score of the entity under the
configured profile: points for each identifier and descriptive field
present, clamped to 0..100. The score is derived from the entity, never
stored, so it can only change when a field does.`,
		Args: cobra.NoArgs,
		Example: `  orbite score                # One-line score
  orbite score --breakdown    # Per-criterion table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			b := dossier.ScoreBreakdown()

			if !breakdown {
				if tableFormat(app) {
					fmt.Fprintf(os.Stdout, "%d/%d (%s)\n", b.Score, b.Max, b.Profile)
					return nil
				}
				return formatter(app).Format(os.Stdout, map[string]any{
					"score":   b.Score,
					"max":     b.Max,
					"profile": b.Profile,
				})
			}

			if tableFormat(app) {
				return formatter(app).Format(os.Stdout, cli.BreakdownToTableData(b))
			}
			return formatter(app).Format(os.Stdout, b)
		},
	}

	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "show per-criterion detail")

	return cmd
}
