package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
)

// NewSetCommand creates the set command.
func NewSetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "set <field>=<value> ...",
		GroupID: groupDossier,
		Short:   "Edit entity fields by hand",
		Long: `Set writes entity fields directly. Manual edits may overwrite
anything, including values that came from a source; identifier fields
are still validated (QID shape, SIREN checksum).

Field names match the JSON keys of the entity, e.g. name, legal_name,
qid, siren, website, org_type, address_city.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  orbite set name="Orange" website="https://www.orange.fr"
  orbite set org_type=Corporation
  orbite set siren=380129866`,
		RunE: func(_ *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			for _, arg := range args {
				field, value, found := strings.Cut(arg, "=")
				if !found {
					return errors.NewValidationError("assignment", arg,
						"expected <field>=<value>")
				}
				if err := dossier.SetField(entity.Field(field), value); err != nil {
					return err
				}
			}

			if err := dossier.Save(); err != nil {
				return err
			}

			progressf(app, "set %d field(s), revision %d", len(args), dossier.Revision())
			return nil
		},
	}
}
