package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/cli"
	"github.com/entityscope/orbite/pkg/entity"
)

// NewRelationCommand creates the relation command with its subcommands.
func NewRelationCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relation",
		GroupID: groupDossier,
		Short:   "Manage the entity's related organizations",
		Long: `Relation manages the ecosystem ring of the dossier: subsidiaries,
departments, brands, and member organizations. Excluded relations stay
in the dossier but are left out of every projection.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRelationAddCommand(app))
	cmd.AddCommand(newRelationListCommand(app))
	cmd.AddCommand(newRelationIncludeCommand(app, true))
	cmd.AddCommand(newRelationIncludeCommand(app, false))
	cmd.AddCommand(newRelationRemoveCommand(app))

	return cmd
}

func newRelationAddCommand(app appcontext.Interface) *cobra.Command {
	var qid, schemaType string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a related organization",
		Args:  cobra.ExactArgs(1),
		Example: `  orbite relation add "Orange Business" --qid Q3351380
  orbite relation add "Sosh" --type brand`,
		RunE: func(_ *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			rel, err := dossier.AddRelation(entity.Relation{
				Name:       args[0],
				QID:        qid,
				SchemaType: entity.SchemaType(schemaType),
				Include:    true,
			})
			if err != nil {
				return err
			}

			if err := dossier.Save(); err != nil {
				return err
			}

			progressf(app, "added relation %s (%s)", rel.Name, rel.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&qid, "qid", "", "Wikidata id of the related organization")
	cmd.Flags().StringVar(&schemaType, "type", "",
		"relation type: subOrganization, department, brand, member (default subOrganization)")

	return cmd
}

func newRelationListCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List related organizations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			rels := dossier.Relations()
			if tableFormat(app) {
				return formatter(app).Format(os.Stdout, cli.RelationsToTableData(rels))
			}
			return formatter(app).Format(os.Stdout, rels)
		},
	}
}

func newRelationIncludeCommand(app appcontext.Interface, include bool) *cobra.Command {
	use, short := "include <id>", "Include a relation in projections"
	if !include {
		use, short = "exclude <id>", "Exclude a relation from projections"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}
			if err := dossier.SetRelationInclude(args[0], include); err != nil {
				return err
			}
			return dossier.Save()
		},
	}
}

func newRelationRemoveCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a relation from the dossier",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}
			if err := dossier.RemoveRelation(args[0]); err != nil {
				return err
			}
			return dossier.Save()
		},
	}
}
