package entity

// SourceID identifies one upstream data source.
type SourceID string

// String returns the string representation of a SourceID.
func (s SourceID) String() string {
	return string(s)
}

// Known data sources.
const (
	SourceWikidata SourceID = "wikidata" // Wikidata knowledge graph
	SourceINSEE    SourceID = "insee"    // French INSEE company registry
	SourceEnrich   SourceID = "enrich"   // Generative-text enrichment
)

// PartialRecord is a typed, possibly sparse set of Entity attributes
// produced by one source adapter. An empty field means the source had
// no data for it; the merge engine never replaces an existing Entity
// value with one.
type PartialRecord struct {
	Source SourceID `json:"source"` // Adapter that produced the record

	Name          string `json:"name,omitempty"`
	NameEN        string `json:"name_en,omitempty"`
	LegalName     string `json:"legal_name,omitempty"`
	DescriptionFR string `json:"description_fr,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
	ExpertiseFR   string `json:"expertise_fr,omitempty"`
	ExpertiseEN   string `json:"expertise_en,omitempty"`
	QID           string `json:"qid,omitempty"`
	SIREN         string `json:"siren,omitempty"`
	SIRET         string `json:"siret,omitempty"`
	NAF           string `json:"naf,omitempty"`
	ISNI          string `json:"isni,omitempty"`
	ROR           string `json:"ror,omitempty"`
	LEI           string `json:"lei,omitempty"`
	Website       string `json:"website,omitempty"`
	ParentOrgName string `json:"parent_org_name,omitempty"`
	ParentOrgQID  string `json:"parent_org_qid,omitempty"`

	AddressStreet  string `json:"address_street,omitempty"`
	AddressCity    string `json:"address_city,omitempty"`
	AddressPostal  string `json:"address_postal,omitempty"`
	AddressCountry string `json:"address_country,omitempty"`
	CreationDate   string `json:"creation_date,omitempty"`

	// Relations harvested alongside the record (knowledge-graph links).
	Relations []Relation `json:"relations,omitempty"`
}

// Get returns the value the record carries for f, or "" when the field
// is absent or not one a source can assert.
func (r *PartialRecord) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldNameEN:
		return r.NameEN
	case FieldLegalName:
		return r.LegalName
	case FieldDescriptionFR:
		return r.DescriptionFR
	case FieldDescriptionEN:
		return r.DescriptionEN
	case FieldExpertiseFR:
		return r.ExpertiseFR
	case FieldExpertiseEN:
		return r.ExpertiseEN
	case FieldQID:
		return r.QID
	case FieldSIREN:
		return r.SIREN
	case FieldSIRET:
		return r.SIRET
	case FieldNAF:
		return r.NAF
	case FieldISNI:
		return r.ISNI
	case FieldROR:
		return r.ROR
	case FieldLEI:
		return r.LEI
	case FieldWebsite:
		return r.Website
	case FieldParentOrgName:
		return r.ParentOrgName
	case FieldParentOrgQID:
		return r.ParentOrgQID
	case FieldAddressStreet:
		return r.AddressStreet
	case FieldAddressCity:
		return r.AddressCity
	case FieldAddressPostal:
		return r.AddressPostal
	case FieldAddressCountry:
		return r.AddressCountry
	case FieldCreationDate:
		return r.CreationDate
	}
	return ""
}

// IsEmpty reports whether the record carries no field values and no
// harvested relations.
func (r *PartialRecord) IsEmpty() bool {
	for _, f := range MergeFields() {
		if r.Get(f) != "" {
			return false
		}
	}
	return len(r.Relations) == 0
}

// FieldCount returns the number of non-empty fields the record carries.
func (r *PartialRecord) FieldCount() int {
	n := 0
	for _, f := range MergeFields() {
		if r.Get(f) != "" {
			n++
		}
	}
	return n
}

// SearchHit is one candidate from a source search: enough to show a
// disambiguation list and drive a follow-up fetch by id.
type SearchHit struct {
	Source      SourceID `json:"source"`                // Source the hit came from
	ID          string   `json:"id"`                    // Source-native id (QID or SIREN)
	Label       string   `json:"label"`                 // Display label
	Description string   `json:"description,omitempty"` // Short disambiguation text
}
