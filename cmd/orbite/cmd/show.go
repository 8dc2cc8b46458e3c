package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/cli"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/reconcile"
)

// dossierView is the machine-format payload of the show command.
type dossierView struct {
	Entity      *entity.Entity      `json:"entity" yaml:"entity"`
	Relations   entity.Relations    `json:"relations" yaml:"relations"`
	SocialLinks entity.SocialLinks  `json:"social_links" yaml:"social_links"`
	Conflicts   []reconcile.Conflict `json:"conflicts" yaml:"conflicts"`
	Score       int                 `json:"score" yaml:"score"`
	Revision    uint64              `json:"revision" yaml:"revision"`
}

// NewShowCommand creates the show command.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		GroupID: groupDossier,
		Short:   "Show the current dossier",
		Long: `Show prints the dossier: every entity field in table mode, or the
full snapshot (entity, relations, social links, conflict journal,
score, revision) as JSON or YAML.`,
		Args: cobra.NoArgs,
		Example: `  orbite show             # Field table on a terminal
  orbite show -o json      # Full snapshot as JSON
  orbite show -o yaml      # Full snapshot as YAML`,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			if tableFormat(app) {
				progressf(app, "score %d/100, revision %d", dossier.Score(), dossier.Revision())
				return formatter(app).Format(os.Stdout, cli.EntityToTableData(dossier.Entity()))
			}

			return formatter(app).Format(os.Stdout, dossierView{
				Entity:      dossier.Entity(),
				Relations:   dossier.Relations(),
				SocialLinks: dossier.SocialLinks(),
				Conflicts:   dossier.Conflicts(),
				Score:       dossier.Score(),
				Revision:    dossier.Revision(),
			})
		},
	}
}
