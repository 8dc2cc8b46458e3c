package reconcile

import "github.com/entityscope/orbite/pkg/entity"

// Conflict records a disagreement between an incoming record value and
// a value the entity already held. Under fill-empty the existing value
// is kept and the incoming one dropped; under prefer-incoming (and
// primary-key re-assertion) the incoming value is kept and the previous
// one dropped. Source is always the record that triggered the conflict.
type Conflict struct {
	Field   entity.Field    `json:"field"`   // Attribute the sources disagree on
	Kept    string          `json:"kept"`    // Value now on the entity
	Dropped string          `json:"dropped"` // Value that lost
	Source  entity.SourceID `json:"source"`  // Record source that triggered the conflict
}

// Changes summarizes what one merge did to the dossier.
type Changes struct {
	Source    entity.SourceID  `json:"source"`              // Record source that was merged
	Policy    Policy           `json:"policy"`              // Policy the merge ran under
	Assigned  []entity.Field   `json:"assigned,omitempty"`  // Fields written, in canonical order
	Conflicts []Conflict       `json:"conflicts,omitempty"` // Disagreements journaled during the merge
	Harvested entity.Relations `json:"harvested,omitempty"` // New relations carried by the record
}

// Empty reports whether the merge changed nothing.
func (c Changes) Empty() bool {
	return len(c.Assigned) == 0 && len(c.Conflicts) == 0 && len(c.Harvested) == 0
}
