package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/cli"
	"github.com/entityscope/orbite/pkg/entity"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(app appcontext.Interface) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:     "search <query>",
		GroupID: groupDossier,
		Short:   "Search sources for candidate organizations",
		Long: `Search queries the registered sources for organizations matching a
free-text query. A failing source degrades to zero hits so one outage
never hides the other source's candidates.`,
		Args: cobra.ExactArgs(1),
		Example: `  orbite search "orange"                    # Query every source
  orbite search "orange" --source wikidata  # Query one source only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			hits, err := dossier.Search(cmd.Context(), entity.SourceID(source), args[0])
			if err != nil {
				return err
			}

			progressf(app, "found %d candidate(s)", len(hits))

			if tableFormat(app) {
				return formatter(app).Format(os.Stdout, cli.SearchHitsToTableData(hits))
			}
			return formatter(app).Format(os.Stdout, hits)
		},
	}

	cmd.Flags().StringVar(&source, "source", "",
		fmt.Sprintf("query a single source (%s or %s)", entity.SourceWikidata, entity.SourceINSEE))

	return cmd
}
