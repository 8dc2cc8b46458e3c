// Package jsonld projects a dossier into a schema.org Organization
// document. Optional properties are omitted rather than emitted as
// null, so published documents never carry null values or null list
// entries. Output key order follows the struct layout and is stable
// across runs.
package jsonld

import (
	"encoding/json"
	"strings"

	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
)

// Context is the vocabulary every document declares.
const Context = "https://schema.org"

// MediaType is the content type of a marshaled document.
const MediaType = "application/ld+json"

// Embedded object types.
const (
	TypePropertyValue = "PropertyValue"
	TypePostalAddress = "PostalAddress"
	TypeOrganization  = "Organization"
)

// LangValue is one language variant of a text property.
type LangValue struct {
	Language string `json:"@language"`
	Value    string `json:"@value"`
}

// PropertyValue is one strong identifier entry.
type PropertyValue struct {
	Type       string `json:"@type"`
	PropertyID string `json:"propertyID"`
	Value      string `json:"value"`
}

// RelatedOrg is an embedded reference to another organization.
type RelatedOrg struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// PostalAddress is the structured address of the head office.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressLocality string `json:"addressLocality"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// Document is a schema.org Organization. Name and Description hold
// either a plain string or an ordered []LangValue, depending on which
// language variants the dossier carries.
type Document struct {
	Context            string          `json:"@context"`
	Type               string          `json:"@type"`
	Name               any             `json:"name"`
	LegalName          string          `json:"legalName,omitempty"`
	URL                string          `json:"url,omitempty"`
	Description        any             `json:"description,omitempty"`
	TaxID              string          `json:"taxID,omitempty"`
	Identifier         []PropertyValue `json:"identifier,omitempty"`
	LEICode            string          `json:"leiCode,omitempty"`
	SameAs             []string        `json:"sameAs,omitempty"`
	KnowsAbout         []LangValue     `json:"knowsAbout,omitempty"`
	FoundingDate       string          `json:"foundingDate,omitempty"`
	ParentOrganization *RelatedOrg     `json:"parentOrganization,omitempty"`
	SubOrganization    []RelatedOrg    `json:"subOrganization,omitempty"`
	Address            *PostalAddress  `json:"address,omitempty"`
}

// Build assembles the document for a dossier. Only included relations
// project; social links join sameAs after the Wikidata reference, in
// canonical network order.
func Build(e *entity.Entity, relations entity.Relations, links entity.SocialLinks) (*Document, error) {
	if e == nil {
		return nil, &errors.ValidationError{Field: "entity", Message: "entity must not be nil"}
	}

	// name is required by the vocabulary; an unnamed dossier falls back
	// to the display label rather than publishing an empty string.
	name := text(e.Name, e.NameEN)
	if name == "" {
		name = e.DisplayName()
	}

	doc := &Document{
		Context:      Context,
		Type:         e.OrgType.String(),
		Name:         name,
		LegalName:    e.LegalName,
		URL:          e.Website,
		LEICode:      e.LEI,
		FoundingDate: e.CreationDate,
	}

	if e.DescriptionFR != "" || e.DescriptionEN != "" {
		doc.Description = text(e.DescriptionFR, e.DescriptionEN)
	}
	if e.SIREN != "" {
		doc.TaxID = "FR" + e.SIREN
	}

	doc.Identifier = identifiers(e)
	doc.KnowsAbout = knowsAbout(e.ExpertiseFR, e.ExpertiseEN)

	if url := e.WikidataURL(); url != "" {
		doc.SameAs = append(doc.SameAs, url)
	}
	doc.SameAs = append(doc.SameAs, links.URLs()...)

	if e.ParentOrgName != "" {
		parent := &RelatedOrg{Type: TypeOrganization, Name: e.ParentOrgName}
		ref := entity.Relation{QID: e.ParentOrgQID}
		parent.URL = ref.WikidataURL()
		doc.ParentOrganization = parent
	}

	for _, rel := range relations.Included() {
		doc.SubOrganization = append(doc.SubOrganization, RelatedOrg{
			Type: rel.SchemaType.String(),
			Name: rel.Name,
			URL:  rel.WikidataURL(),
		})
	}

	if e.AddressCity != "" {
		doc.Address = &PostalAddress{
			Type:            TypePostalAddress,
			StreetAddress:   e.AddressStreet,
			PostalCode:      e.AddressPostal,
			AddressLocality: e.AddressCity,
			AddressCountry:  e.AddressCountry,
		}
	}

	return doc, nil
}

// Marshal serializes the document with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// identifiers collects the strong identifier entries in canonical
// order: SIREN, SIRET, LEI.
func identifiers(e *entity.Entity) []PropertyValue {
	var out []PropertyValue
	add := func(propertyID, value string) {
		if value != "" {
			out = append(out, PropertyValue{Type: TypePropertyValue, PropertyID: propertyID, Value: value})
		}
	}
	add("SIREN", e.SIREN)
	add("SIRET", e.SIRET)
	add("LEI", e.LEI)
	return out
}

// text renders a bilingual property: a plain string when only the
// French variant is set, an ordered variant list otherwise.
func text(fr, en string) any {
	switch {
	case en == "":
		return fr
	case fr == "":
		return []LangValue{{Language: "en", Value: en}}
	default:
		return []LangValue{
			{Language: "fr", Value: fr},
			{Language: "en", Value: en},
		}
	}
}

// knowsAbout splits the comma-joined expertise lists into tagged
// variants, the French list first.
func knowsAbout(fr, en string) []LangValue {
	var out []LangValue
	for _, tag := range splitTags(fr) {
		out = append(out, LangValue{Language: "fr", Value: tag})
	}
	for _, tag := range splitTags(en) {
		out = append(out, LangValue{Language: "en", Value: tag})
	}
	return out
}

// splitTags splits a comma-joined topic list, dropping blanks.
func splitTags(list string) []string {
	var out []string
	for _, tag := range strings.Split(list, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
