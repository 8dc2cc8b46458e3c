// Package entity defines the canonical organization dossier model: the
// merged Entity, the typed partial records produced by source adapters,
// harvested and manual relations, and the fixed social-link slots.
//
// The Entity is the single mutable value the whole engine revolves
// around. Source adapters emit PartialRecords, the reconcile package
// folds them into the Entity under fill-empty semantics, and the
// projection packages (score, diagram, jsonld, report) read it without
// ever mutating it.
package entity

import (
	"regexp"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/errors"
)

// OrgType classifies the organization with a linked-data type name.
type OrgType string

// String returns the string representation of an OrgType.
func (t OrgType) String() string {
	return string(t)
}

// Organization types supported by the linked-data projection.
const (
	OrgTypeOrganization  OrgType = "Organization"            // Generic organization (default)
	OrgTypeCorporation   OrgType = "Corporation"             // Commercial company
	OrgTypeLocalBusiness OrgType = "LocalBusiness"           // Local storefront business
	OrgTypeEducational   OrgType = "EducationalOrganization" // School, university, research body
	OrgTypeGovernment    OrgType = "GovernmentOrganization"  // Public administration
	OrgTypeNGO           OrgType = "NGO"                     // Non-governmental organization
)

// OrgTypes returns all supported organization types in display order.
func OrgTypes() []OrgType {
	return []OrgType{
		OrgTypeOrganization,
		OrgTypeCorporation,
		OrgTypeLocalBusiness,
		OrgTypeEducational,
		OrgTypeGovernment,
		OrgTypeNGO,
	}
}

// Valid reports whether t is a supported organization type.
func (t OrgType) Valid() bool {
	for _, known := range OrgTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Entity is the canonical merged view of one organization. Fields are
// filled from source records under fill-empty semantics and, once set,
// are never overwritten by a merge (manual edits excepted).
type Entity struct {
	// Names
	Name      string `json:"name" yaml:"name"`             // Canonical display name (usually French)
	NameEN    string `json:"name_en" yaml:"name_en"`       // English name, when it differs
	LegalName string `json:"legal_name" yaml:"legal_name"` // Registered legal name

	// Narrative
	DescriptionFR string `json:"description_fr" yaml:"description_fr"` // French description
	DescriptionEN string `json:"description_en" yaml:"description_en"` // English description
	ExpertiseFR   string `json:"expertise_fr" yaml:"expertise_fr"`     // Comma-joined French expertise topics
	ExpertiseEN   string `json:"expertise_en" yaml:"expertise_en"`     // Comma-joined English expertise topics

	// External identifiers
	QID   string `json:"qid" yaml:"qid"`     // Wikidata item id (Q-number)
	SIREN string `json:"siren" yaml:"siren"` // INSEE enterprise id (9 digits)
	SIRET string `json:"siret" yaml:"siret"` // INSEE establishment id (14 digits)
	NAF   string `json:"naf" yaml:"naf"`     // INSEE principal-activity code (APE/NAF)
	ISNI  string `json:"isni" yaml:"isni"`   // International Standard Name Identifier
	ROR   string `json:"ror" yaml:"ror"`     // Research Organization Registry id
	LEI   string `json:"lei" yaml:"lei"`     // Legal Entity Identifier

	// Web presence
	Website string `json:"website" yaml:"website"` // Official website URL

	// Classification
	OrgType OrgType `json:"org_type" yaml:"org_type"` // Linked-data type tag

	// Hierarchy
	ParentOrgName string `json:"parent_org_name" yaml:"parent_org_name"` // Parent organization display name
	ParentOrgQID  string `json:"parent_org_qid" yaml:"parent_org_qid"`   // Parent organization Wikidata id

	// Address
	AddressStreet  string `json:"address_street" yaml:"address_street"`   // Street line
	AddressCity    string `json:"address_city" yaml:"address_city"`       // City or commune
	AddressPostal  string `json:"address_postal" yaml:"address_postal"`   // Postal code
	AddressCountry string `json:"address_country" yaml:"address_country"` // Country name

	// Lifecycle
	CreationDate string `json:"creation_date" yaml:"creation_date"` // ISO date (YYYY-MM-DD)

	// Provenance flags, set once the matching source has been merged.
	FromWikidata bool `json:"source_wikidata" yaml:"source_wikidata"` // A Wikidata record was merged
	FromINSEE    bool `json:"source_insee" yaml:"source_insee"`       // An INSEE record was merged
}

// New returns a blank dossier with the classification and country
// defaults applied.
func New() *Entity {
	return &Entity{
		OrgType:        OrgTypeOrganization,
		AddressCountry: constants.DefaultCountry,
	}
}

// Field names one Entity attribute. Fields are the unit of fill-empty
// merging, conflict journaling, and score lookups.
type Field string

// String returns the string representation of a Field.
func (f Field) String() string {
	return string(f)
}

// Entity attribute names. The values match the JSON keys of the Entity
// struct so saved state, API payloads, and merge reports agree.
const (
	FieldName           Field = "name"
	FieldNameEN         Field = "name_en"
	FieldLegalName      Field = "legal_name"
	FieldDescriptionFR  Field = "description_fr"
	FieldDescriptionEN  Field = "description_en"
	FieldExpertiseFR    Field = "expertise_fr"
	FieldExpertiseEN    Field = "expertise_en"
	FieldQID            Field = "qid"
	FieldSIREN          Field = "siren"
	FieldSIRET          Field = "siret"
	FieldNAF            Field = "naf"
	FieldISNI           Field = "isni"
	FieldROR            Field = "ror"
	FieldLEI            Field = "lei"
	FieldWebsite        Field = "website"
	FieldOrgType        Field = "org_type"
	FieldParentOrgName  Field = "parent_org_name"
	FieldParentOrgQID   Field = "parent_org_qid"
	FieldAddressStreet  Field = "address_street"
	FieldAddressCity    Field = "address_city"
	FieldAddressPostal  Field = "address_postal"
	FieldAddressCountry Field = "address_country"
	FieldCreationDate   Field = "creation_date"
)

// MergeFields lists every attribute the merge engine may fill, in the
// canonical order used for merge reports and conflict journaling.
// org_type is excluded: it is a classification chosen by the operator,
// never asserted by a source record.
func MergeFields() []Field {
	return []Field{
		FieldName,
		FieldNameEN,
		FieldLegalName,
		FieldDescriptionFR,
		FieldDescriptionEN,
		FieldExpertiseFR,
		FieldExpertiseEN,
		FieldQID,
		FieldSIREN,
		FieldSIRET,
		FieldNAF,
		FieldISNI,
		FieldROR,
		FieldLEI,
		FieldWebsite,
		FieldParentOrgName,
		FieldParentOrgQID,
		FieldAddressStreet,
		FieldAddressCity,
		FieldAddressPostal,
		FieldAddressCountry,
		FieldCreationDate,
	}
}

// Get returns the current value of f, or "" for an unknown field.
func (e *Entity) Get(f Field) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldNameEN:
		return e.NameEN
	case FieldLegalName:
		return e.LegalName
	case FieldDescriptionFR:
		return e.DescriptionFR
	case FieldDescriptionEN:
		return e.DescriptionEN
	case FieldExpertiseFR:
		return e.ExpertiseFR
	case FieldExpertiseEN:
		return e.ExpertiseEN
	case FieldQID:
		return e.QID
	case FieldSIREN:
		return e.SIREN
	case FieldSIRET:
		return e.SIRET
	case FieldNAF:
		return e.NAF
	case FieldISNI:
		return e.ISNI
	case FieldROR:
		return e.ROR
	case FieldLEI:
		return e.LEI
	case FieldWebsite:
		return e.Website
	case FieldOrgType:
		return e.OrgType.String()
	case FieldParentOrgName:
		return e.ParentOrgName
	case FieldParentOrgQID:
		return e.ParentOrgQID
	case FieldAddressStreet:
		return e.AddressStreet
	case FieldAddressCity:
		return e.AddressCity
	case FieldAddressPostal:
		return e.AddressPostal
	case FieldAddressCountry:
		return e.AddressCountry
	case FieldCreationDate:
		return e.CreationDate
	}
	return ""
}

// Set assigns v to f. Unknown field names and invalid org_type values
// are rejected; other values are stored as given, matching the free-text
// edit surface of the dossier.
func (e *Entity) Set(f Field, v string) error {
	switch f {
	case FieldName:
		e.Name = v
	case FieldNameEN:
		e.NameEN = v
	case FieldLegalName:
		e.LegalName = v
	case FieldDescriptionFR:
		e.DescriptionFR = v
	case FieldDescriptionEN:
		e.DescriptionEN = v
	case FieldExpertiseFR:
		e.ExpertiseFR = v
	case FieldExpertiseEN:
		e.ExpertiseEN = v
	case FieldQID:
		e.QID = v
	case FieldSIREN:
		e.SIREN = v
	case FieldSIRET:
		e.SIRET = v
	case FieldNAF:
		e.NAF = v
	case FieldISNI:
		e.ISNI = v
	case FieldROR:
		e.ROR = v
	case FieldLEI:
		e.LEI = v
	case FieldWebsite:
		e.Website = v
	case FieldOrgType:
		t := OrgType(v)
		if !t.Valid() {
			return &errors.ValidationError{Field: "org_type", Value: v, Message: "unknown organization type"}
		}
		e.OrgType = t
	case FieldParentOrgName:
		e.ParentOrgName = v
	case FieldParentOrgQID:
		e.ParentOrgQID = v
	case FieldAddressStreet:
		e.AddressStreet = v
	case FieldAddressCity:
		e.AddressCity = v
	case FieldAddressPostal:
		e.AddressPostal = v
	case FieldAddressCountry:
		e.AddressCountry = v
	case FieldCreationDate:
		e.CreationDate = v
	default:
		return &errors.ValidationError{Field: f.String(), Message: "unknown entity field"}
	}
	return nil
}

// Has reports whether f currently holds a non-empty value.
func (e *Entity) Has(f Field) bool {
	return e.Get(f) != ""
}

// IsZero reports whether no mergeable field holds a value and no source
// has been merged yet.
func (e *Entity) IsZero() bool {
	for _, f := range MergeFields() {
		if f == FieldAddressCountry {
			// Country carries a default and says nothing about progress.
			continue
		}
		if e.Has(f) {
			return false
		}
	}
	return !e.FromWikidata && !e.FromINSEE
}

// Clone returns an independent copy of the entity.
func (e *Entity) Clone() *Entity {
	c := *e
	return &c
}

// DisplayName returns the best available label for headings and the
// diagram center: name, then legal name, then a neutral placeholder.
func (e *Entity) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	if e.LegalName != "" {
		return e.LegalName
	}
	return "Entité"
}

// WikidataURL returns the canonical Wikidata page for the entity, or ""
// when no QID is set.
func (e *Entity) WikidataURL() string {
	if e.QID == "" {
		return ""
	}
	return constants.WikidataEntityURL + e.QID
}

var (
	qidPattern   = regexp.MustCompile(`^Q\d+$`)
	sirenPattern = regexp.MustCompile(`^\d{9}$`)
)

// ValidQID reports whether s looks like a Wikidata item id (Q-number).
func ValidQID(s string) bool {
	return qidPattern.MatchString(s)
}

// ValidSIREN reports whether s looks like a 9-digit SIREN.
func ValidSIREN(s string) bool {
	return sirenPattern.MatchString(s)
}
