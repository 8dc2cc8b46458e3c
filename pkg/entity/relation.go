package entity

// SchemaType is the linked-data property connecting a related
// organization to the entity.
type SchemaType string

// String returns the string representation of a SchemaType.
func (t SchemaType) String() string {
	return string(t)
}

// Relation types supported by the linked-data projection.
const (
	SchemaSubOrganization SchemaType = "subOrganization" // Subsidiary or owned unit
	SchemaDepartment      SchemaType = "department"      // Internal department
	SchemaBrand           SchemaType = "brand"           // Commercial brand
	SchemaMember          SchemaType = "member"          // Membership link
)

// SchemaTypes returns the supported relation types in display order.
func SchemaTypes() []SchemaType {
	return []SchemaType{
		SchemaSubOrganization,
		SchemaDepartment,
		SchemaBrand,
		SchemaMember,
	}
}

// Valid reports whether t is a supported relation type.
func (t SchemaType) Valid() bool {
	for _, known := range SchemaTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Relation links a related organization to the entity. Harvested
// relations carry the Wikidata id of the other side; manual relations
// may leave it empty.
type Relation struct {
	ID         string     `json:"id" yaml:"id"`                   // Stable local id
	QID        string     `json:"qid" yaml:"qid"`                 // Wikidata id of the related org, if known
	Name       string     `json:"name" yaml:"name"`               // Display name
	SchemaType SchemaType `json:"schema_type" yaml:"schema_type"` // Linked-data relation type
	Include    bool       `json:"include" yaml:"include"`         // Included in projections when true
}

// WikidataURL returns the Wikidata page for the related organization,
// or "" when its QID is unknown.
func (r *Relation) WikidataURL() string {
	if r.QID == "" {
		return ""
	}
	other := Entity{QID: r.QID}
	return other.WikidataURL()
}

// Relations is an ordered list of relation links.
type Relations []Relation

// Included returns the relations marked for projection, in order.
func (rs Relations) Included() Relations {
	var out Relations
	for _, r := range rs {
		if r.Include {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the relation with the given local id.
func (rs Relations) Find(id string) (Relation, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return Relation{}, false
}

// ContainsQID reports whether a relation to the given Wikidata id is
// already present. Used to dedupe harvested relations across merges.
func (rs Relations) ContainsQID(qid string) bool {
	if qid == "" {
		return false
	}
	for _, r := range rs {
		if r.QID == qid {
			return true
		}
	}
	return false
}

// Remove deletes the relation with the given local id and reports
// whether one was removed.
func (rs Relations) Remove(id string) (Relations, bool) {
	for i, r := range rs {
		if r.ID == id {
			out := make(Relations, 0, len(rs)-1)
			out = append(out, rs[:i]...)
			out = append(out, rs[i+1:]...)
			return out, true
		}
	}
	return rs, false
}

// Clone returns an independent copy of the relation list.
func (rs Relations) Clone() Relations {
	if rs == nil {
		return nil
	}
	out := make(Relations, len(rs))
	copy(out, rs)
	return out
}
