package cmd

import (
	"github.com/spf13/cobra"

	orbite "github.com/entityscope/orbite"
	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/reconcile"
)

// NewMergeCommand creates the merge command.
func NewMergeCommand(app appcontext.Interface) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:     "merge <source> <id>",
		GroupID: groupDossier,
		Short:   "Fetch a record and fold it into the dossier",
		Long: `Merge fetches one record by its source-native id and folds it into
the entity. Under the default fill-empty policy incoming values only
land on empty fields; disagreements are journaled as conflicts. The
dossier is saved after a successful merge and left untouched when the
fetch fails.`,
		Args: cobra.ExactArgs(2),
		Example: `  orbite merge wikidata Q1431486              # Merge a Wikidata record
  orbite merge insee 380129866                # Merge an INSEE record
  orbite merge insee 380129866 --policy prefer-incoming`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dossier, err := app.Dossier()
			if err != nil {
				return err
			}

			opts, err := mergeOptions(policy)
			if err != nil {
				return err
			}

			changes, err := dossier.Merge(cmd.Context(), entity.SourceID(args[0]), args[1], opts...)
			if err != nil {
				return err
			}

			if err := dossier.Save(); err != nil {
				return err
			}

			if err := reportChanges(app, changes); err != nil {
				return err
			}
			progressf(app, "authority score: %d/100", dossier.Score())
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "",
		"merge policy for this call: fill-empty or prefer-incoming")

	return cmd
}

// mergeOptions translates the --policy flag into merge options.
func mergeOptions(policy string) ([]orbite.MergeOption, error) {
	if policy == "" {
		return nil, nil
	}
	p := reconcile.Policy(policy)
	if !p.Valid() {
		return nil, errors.NewValidationError("policy", policy,
			"must be fill-empty or prefer-incoming")
	}
	return []orbite.MergeOption{orbite.MergePolicy(p)}, nil
}
