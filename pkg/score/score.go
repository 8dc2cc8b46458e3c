// Package score computes the authority score of a dossier: a weighted
// presence check over the identifiers and signals that make an
// organization cross-referenceable. The score is a completeness
// heuristic, not a correctness proof.
package score

import (
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
)

// MaxScore is the ceiling every profile clamps to.
const MaxScore = 100

// Weight grants points for the presence of one Entity field.
type Weight struct {
	Field  entity.Field `json:"field" yaml:"field"`   // Attribute whose presence earns the points
	Points int          `json:"points" yaml:"points"` // Points granted when non-empty
	Label  string       `json:"label" yaml:"label"`   // Display label for breakdowns
}

// Profile is a named weight table. Built-in profiles sum to MaxScore
// and weight persistent identifiers well above presence signals.
type Profile struct {
	Name    string   `json:"name" yaml:"name"`
	Weights []Weight `json:"weights" yaml:"weights"`
}

// Built-in profile names.
const (
	ProfileStandard = "standard" // Balanced identifiers and signals
	ProfileIdentity = "identity" // Heavier on registry identity
)

// standardWeights is the default table: strong identifiers carry 20-25
// points each, presence signals 10.
func standardWeights() []Weight {
	return []Weight{
		{Field: entity.FieldQID, Points: 25, Label: "Wikidata QID"},
		{Field: entity.FieldSIREN, Points: 25, Label: "SIREN"},
		{Field: entity.FieldLEI, Points: 20, Label: "LEI"},
		{Field: entity.FieldWebsite, Points: 10, Label: "Site web"},
		{Field: entity.FieldParentOrgQID, Points: 10, Label: "Organisation parente"},
		{Field: entity.FieldExpertiseFR, Points: 10, Label: "Expertise"},
	}
}

// identityWeights concentrates the points on registry identity.
func identityWeights() []Weight {
	return []Weight{
		{Field: entity.FieldQID, Points: 30, Label: "Wikidata QID"},
		{Field: entity.FieldSIREN, Points: 30, Label: "SIREN"},
		{Field: entity.FieldLEI, Points: 20, Label: "LEI"},
		{Field: entity.FieldWebsite, Points: 10, Label: "Site web"},
		{Field: entity.FieldParentOrgQID, Points: 5, Label: "Organisation parente"},
		{Field: entity.FieldExpertiseFR, Points: 5, Label: "Expertise"},
	}
}

// Profiles returns the built-in profiles in display order.
func Profiles() []Profile {
	return []Profile{
		{Name: ProfileStandard, Weights: standardWeights()},
		{Name: ProfileIdentity, Weights: identityWeights()},
	}
}

// ProfileByName returns the built-in profile with the given name.
func ProfileByName(name string) (Profile, error) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, &errors.NotFoundError{Resource: "score profile", ID: name}
}

// Default returns the standard profile.
func Default() Profile {
	return Profiles()[0]
}

// Total returns the sum of the profile's points.
func (p Profile) Total() int {
	total := 0
	for _, w := range p.Weights {
		total += w.Points
	}
	return total
}

// Validate checks that the profile is usable: at least one weight, no
// duplicate fields, positive points, and a total of exactly MaxScore.
func (p Profile) Validate() error {
	if len(p.Weights) == 0 {
		return &errors.ValidationError{Field: "weights", Message: "profile has no weights"}
	}
	seen := make(map[entity.Field]bool, len(p.Weights))
	for _, w := range p.Weights {
		if w.Points <= 0 {
			return &errors.ValidationError{Field: w.Field.String(), Message: "weight points must be positive"}
		}
		if seen[w.Field] {
			return &errors.ValidationError{Field: w.Field.String(), Message: "duplicate weight field"}
		}
		seen[w.Field] = true
	}
	if total := p.Total(); total != MaxScore {
		return &errors.ValidationError{Field: "weights", Message: "profile points must total 100"}
	}
	return nil
}

// Compute returns the authority score of e under p, clamped to
// [0, MaxScore].
func Compute(e *entity.Entity, p Profile) int {
	scored := 0
	for _, w := range p.Weights {
		if e.Has(w.Field) {
			scored += w.Points
		}
	}
	if scored > MaxScore {
		return MaxScore
	}
	if scored < 0 {
		return 0
	}
	return scored
}

// Detail is one row of a score breakdown.
type Detail struct {
	Field   entity.Field `json:"field"`   // Attribute checked
	Label   string       `json:"label"`   // Display label
	Points  int          `json:"points"`  // Points at stake
	Present bool         `json:"present"` // Whether the attribute is set
	Earned  int          `json:"earned"`  // Points earned (Points or 0)
}

// Breakdown is the per-weight explanation of a score.
type Breakdown struct {
	Profile string   `json:"profile"` // Profile the score was computed under
	Score   int      `json:"score"`   // Clamped total
	Max     int      `json:"max"`     // Always MaxScore
	Details []Detail `json:"details"` // One row per weight, in profile order
}

// Explain returns the score of e under p together with the per-weight
// rows that produced it.
func Explain(e *entity.Entity, p Profile) Breakdown {
	details := make([]Detail, 0, len(p.Weights))
	for _, w := range p.Weights {
		d := Detail{
			Field:  w.Field,
			Label:  w.Label,
			Points: w.Points,
		}
		if e.Has(w.Field) {
			d.Present = true
			d.Earned = w.Points
		}
		details = append(details, d)
	}
	return Breakdown{
		Profile: p.Name,
		Score:   Compute(e, p),
		Max:     MaxScore,
		Details: details,
	}
}
