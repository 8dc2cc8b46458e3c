// Package reconcile folds typed source records into the canonical
// Entity under a first-non-empty-wins policy. A field, once populated,
// is never replaced by a later merge; the two exceptions are the
// prefer-incoming policy and a source re-asserting its own primary key
// (Wikidata for qid, INSEE for siren). Every suppressed or replaced
// value is journaled as a Conflict so disagreements between sources
// stay visible instead of silently vanishing.
package reconcile

import (
	"github.com/google/uuid"

	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
)

// Policy selects how an incoming value meets an existing one.
type Policy string

// String returns the string representation of a Policy.
func (p Policy) String() string {
	return string(p)
}

// Merge policies.
const (
	PolicyFillEmpty      Policy = "fill-empty"      // Assign only when the entity field is empty (default)
	PolicyPreferIncoming Policy = "prefer-incoming" // Incoming non-empty values replace existing ones
)

// Valid reports whether p is a supported policy.
func (p Policy) Valid() bool {
	return p == PolicyFillEmpty || p == PolicyPreferIncoming
}

// Merger applies source records to an Entity. The zero value is not
// usable; construct with New.
type Merger struct {
	policy Policy
}

// Option configures a Merger.
type Option func(*Merger)

// WithPolicy sets the merge policy.
func WithPolicy(p Policy) Option {
	return func(m *Merger) {
		m.policy = p
	}
}

// New returns a Merger, defaulting to the fill-empty policy.
func New(opts ...Option) (*Merger, error) {
	m := &Merger{policy: PolicyFillEmpty}
	for _, opt := range opts {
		opt(m)
	}
	if !m.policy.Valid() {
		return nil, &errors.ValidationError{Field: "policy", Value: m.policy.String(), Message: "unknown merge policy"}
	}
	return m, nil
}

// Policy returns the merger's configured policy.
func (m *Merger) Policy() Policy {
	return m.policy
}

// primaryKey reports whether f is the identifier minted by the record's
// own source. A source may correct its primary key on a repeated merge
// even though the field is already set.
func primaryKey(f entity.Field, src entity.SourceID) bool {
	switch src {
	case entity.SourceWikidata:
		return f == entity.FieldQID
	case entity.SourceINSEE:
		return f == entity.FieldSIREN
	}
	return false
}

// Merge folds rec into e and returns what changed. existing is the
// dossier's current relation list, used to dedupe harvested relations;
// new ones are returned in Changes.Harvested for the caller to append.
// The entity is modified in place; on error it is left untouched.
func (m *Merger) Merge(e *entity.Entity, existing entity.Relations, rec *entity.PartialRecord) (Changes, error) {
	if e == nil {
		return Changes{}, &errors.ValidationError{Field: "entity", Message: "nil entity"}
	}
	if rec == nil {
		return Changes{}, &errors.ValidationError{Field: "record", Message: "nil record"}
	}

	changes := Changes{Source: rec.Source, Policy: m.policy}

	for _, f := range entity.MergeFields() {
		incoming := rec.Get(f)
		if incoming == "" {
			continue
		}
		current := e.Get(f)

		switch {
		case current == "":
			if err := e.Set(f, incoming); err != nil {
				return Changes{}, err
			}
			changes.Assigned = append(changes.Assigned, f)

		case current == incoming:
			// Re-asserting the same value is a no-op.

		case m.policy == PolicyPreferIncoming || primaryKey(f, rec.Source):
			if err := e.Set(f, incoming); err != nil {
				return Changes{}, err
			}
			changes.Assigned = append(changes.Assigned, f)
			changes.Conflicts = append(changes.Conflicts, Conflict{
				Field:   f,
				Kept:    incoming,
				Dropped: current,
				Source:  rec.Source,
			})

		default:
			changes.Conflicts = append(changes.Conflicts, Conflict{
				Field:   f,
				Kept:    current,
				Dropped: incoming,
				Source:  rec.Source,
			})
		}
	}

	changes.Harvested = harvest(existing, rec.Relations)

	switch rec.Source {
	case entity.SourceWikidata:
		e.FromWikidata = true
	case entity.SourceINSEE:
		e.FromINSEE = true
	}

	return changes, nil
}

// harvest returns the record's relations not already known to the
// dossier, normalized and with fresh local ids. Relations without a
// QID cannot be deduped and are skipped.
func harvest(existing entity.Relations, incoming []entity.Relation) entity.Relations {
	var out entity.Relations
	for _, rel := range incoming {
		if rel.QID == "" {
			continue
		}
		if existing.ContainsQID(rel.QID) || out.ContainsQID(rel.QID) {
			continue
		}
		if rel.ID == "" {
			rel.ID = uuid.NewString()
		}
		if rel.SchemaType == "" {
			rel.SchemaType = entity.SchemaSubOrganization
		}
		if rel.Name == "" {
			rel.Name = rel.QID
		}
		rel.Include = true
		out = append(out, rel)
	}
	return out
}
