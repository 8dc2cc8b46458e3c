package cli

import (
	"strconv"

	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/reconcile"
	"github.com/entityscope/orbite/pkg/score"
)

// SearchHitsToTableData converts search hits to table format.
func SearchHitsToTableData(hits []entity.SearchHit) Data {
	rows := make([][]string, 0, len(hits))
	for _, hit := range hits {
		rows = append(rows, []string{
			hit.Source.String(),
			hit.ID,
			hit.Label,
			orDash(hit.Description),
		})
	}
	return Data{
		Headers: []string{"Source", "ID", "Label", "Description"},
		Rows:    rows,
	}
}

// RelationsToTableData converts relations to table format.
func RelationsToTableData(rels entity.Relations) Data {
	rows := make([][]string, 0, len(rels))
	for _, rel := range rels {
		included := "yes"
		if !rel.Include {
			included = "no"
		}
		rows = append(rows, []string{
			rel.ID,
			rel.Name,
			orDash(rel.QID),
			rel.SchemaType.String(),
			included,
		})
	}
	return Data{
		Headers: []string{"ID", "Name", "QID", "Type", "Included"},
		Rows:    rows,
	}
}

// SocialLinksToTableData converts social links to table format, one
// row per known network so gaps stay visible.
func SocialLinksToTableData(links entity.SocialLinks) Data {
	networks := entity.Networks()
	rows := make([][]string, 0, len(networks))
	for _, n := range networks {
		rows = append(rows, []string{string(n), orDash(links[n])})
	}
	return Data{
		Headers: []string{"Network", "URL"},
		Rows:    rows,
	}
}

// ConflictsToTableData converts the merge conflict journal to table format.
func ConflictsToTableData(conflicts []reconcile.Conflict) Data {
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			c.Field.String(),
			c.Kept,
			c.Dropped,
			c.Source.String(),
		})
	}
	return Data{
		Headers: []string{"Field", "Kept", "Dropped", "Source"},
		Rows:    rows,
	}
}

// BreakdownToTableData converts a score breakdown to table format.
func BreakdownToTableData(b score.Breakdown) Data {
	rows := make([][]string, 0, len(b.Details)+1)
	for _, d := range b.Details {
		present := "no"
		if d.Present {
			present = "yes"
		}
		rows = append(rows, []string{
			d.Label,
			present,
			strconv.Itoa(d.Earned),
			strconv.Itoa(d.Points),
		})
	}
	rows = append(rows, []string{
		"Total (" + b.Profile + ")",
		"",
		strconv.Itoa(b.Score),
		strconv.Itoa(b.Max),
	})
	return Data{
		Headers:         []string{"Criterion", "Present", "Earned", "Points"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignCenter, AlignRight, AlignRight},
	}
}

// EntityToTableData converts the entity to a key-value table covering
// every attribute, set or not.
func EntityToTableData(e *entity.Entity) Data {
	fields := append([]entity.Field{}, entity.MergeFields()...)
	fields = append(fields,
		entity.FieldOrgType,
		entity.FieldAddressStreet,
		entity.FieldAddressCity,
		entity.FieldAddressPostal,
		entity.FieldAddressCountry,
		entity.FieldCreationDate,
	)

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.String(), orDash(e.Get(f))})
	}
	return Data{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
