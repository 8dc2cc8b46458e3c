package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/cli"
	"github.com/entityscope/orbite/pkg/entity"
)

// NewSocialCommand creates the social command with its subcommands.
func NewSocialCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "social",
		GroupID: groupDossier,
		Short:   "Manage the entity's social profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSocialSetCommand(app))
	cmd.AddCommand(newSocialListCommand(app))

	return cmd
}

func newSocialSetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "set <network> <url>",
		Short: "Set a social profile URL",
		Long: `Set records the profile URL for one network. An empty URL clears
the slot. Supported networks: linkedin, twitter, facebook, instagram,
youtube, github.`,
		Args: cobra.RangeArgs(1, 2),
		Example: `  orbite social set linkedin https://www.linkedin.com/company/orange
  orbite social set twitter ""     # Clear the slot`,
		RunE: func(_ *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			url := ""
			if len(args) == 2 {
				url = args[1]
			}
			if err := dossier.SetSocialLink(entity.Network(args[0]), url); err != nil {
				return err
			}
			return dossier.Save()
		},
	}
}

func newSocialListCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List social profiles",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			links := dossier.SocialLinks()
			if tableFormat(app) {
				return formatter(app).Format(os.Stdout, cli.SocialLinksToTableData(links))
			}
			return formatter(app).Format(os.Stdout, links)
		},
	}
}
