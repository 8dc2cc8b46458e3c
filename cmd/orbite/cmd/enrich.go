package cmd

import (
	"github.com/spf13/cobra"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/pkg/errors"
)

// NewEnrichCommand creates the enrich command.
func NewEnrichCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "enrich",
		GroupID: groupDossier,
		Short:   "Generate best-effort fields from the current dossier",
		Long: `Enrich asks the configured generative model for descriptive fields
(descriptions, expertise tags, a suggested parent organization) derived
from what the dossier already knows. The proposal is advisory: it only
fills empty fields and never overwrites a value asserted by a source.

Requires GEMINI_API_KEY to be set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}
			if !dossier.HasEnricher() {
				return errors.NewConfigError("enrich",
					"no enricher configured; set GEMINI_API_KEY", nil)
			}

			changes, err := dossier.Enrich(cmd.Context())
			if err != nil {
				return err
			}

			if err := dossier.Save(); err != nil {
				return err
			}

			return reportChanges(app, changes)
		},
	}
}
