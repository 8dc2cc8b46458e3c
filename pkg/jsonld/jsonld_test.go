package jsonld_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityscope/orbite/internal/testhelper"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/jsonld"
)

// fullDossier exercises every document property.
func fullDossier() (*entity.Entity, entity.Relations, entity.SocialLinks) {
	e := entity.New()
	e.Name = "Orange"
	e.LegalName = "ORANGE SA"
	e.DescriptionFR = "Opérateur de télécommunications français."
	e.DescriptionEN = "French telecommunications operator."
	e.ExpertiseFR = "télécoms, fibre, mobile"
	e.ExpertiseEN = "telecoms, fiber"
	e.QID = "Q1431486"
	e.SIREN = "380129866"
	e.SIRET = "38012986646850"
	e.LEI = "969500MCOONR8990S571"
	e.Website = "https://www.orange.fr"
	e.ParentOrgName = "Exemple Holding"
	e.ParentOrgQID = "Q42"
	e.AddressStreet = "78 Rue Olivier de Serres"
	e.AddressCity = "Paris"
	e.AddressPostal = "75015"
	e.CreationDate = "1990-07-31"

	rels := entity.Relations{
		{ID: "rel-1", QID: "Q3351380", Name: "Orange Business", SchemaType: entity.SchemaSubOrganization, Include: true},
		{ID: "rel-2", QID: "Q3491247", Name: "Sosh", SchemaType: entity.SchemaBrand, Include: true},
		{ID: "rel-3", Name: "Cellule interne", SchemaType: entity.SchemaDepartment, Include: false},
	}

	links := entity.NewSocialLinks()
	links[entity.NetworkLinkedIn] = "https://www.linkedin.com/company/orange"
	links[entity.NetworkTwitter] = "https://twitter.com/orange"
	return e, rels, links
}

func TestBuildGolden(t *testing.T) {
	e, rels, links := fullDossier()
	doc, err := jsonld.Build(e, rels, links)
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)
	testhelper.CompareWithTestdata(t, "organization.json", data)
}

func TestBuildMinimal(t *testing.T) {
	doc, err := jsonld.Build(entity.New(), nil, entity.NewSocialLinks())
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 3)
	assert.Equal(t, "https://schema.org", got["@context"])
	assert.Equal(t, "Organization", got["@type"])
	assert.Equal(t, "Entité", got["name"])
}

func TestBuildNameFallsBackToDisplayName(t *testing.T) {
	e := entity.New()
	e.LegalName = "ORANGE SA"

	doc, err := jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)

	// name is a required property; never publish it empty.
	assert.Equal(t, "ORANGE SA", doc.Name)
	assert.Equal(t, "ORANGE SA", doc.LegalName)
}

func TestBuildNeverEmitsNull(t *testing.T) {
	full, rels, links := fullDossier()
	sparse := entity.New()
	sparse.Name = "Orange"
	sparse.SIREN = "380129866"

	for name, tc := range map[string]*entity.Entity{"full": full, "sparse": sparse} {
		t.Run(name, func(t *testing.T) {
			doc, err := jsonld.Build(tc, rels, links)
			require.NoError(t, err)
			data, err := doc.Marshal()
			require.NoError(t, err)
			assert.False(t, bytes.Contains(data, []byte("null")))
		})
	}
}

func TestBuildIdentifierOrder(t *testing.T) {
	e, rels, links := fullDossier()
	doc, err := jsonld.Build(e, rels, links)
	require.NoError(t, err)

	require.Len(t, doc.Identifier, 3)
	assert.Equal(t, "SIREN", doc.Identifier[0].PropertyID)
	assert.Equal(t, "SIRET", doc.Identifier[1].PropertyID)
	assert.Equal(t, "LEI", doc.Identifier[2].PropertyID)
	for _, id := range doc.Identifier {
		assert.Equal(t, "PropertyValue", id.Type)
	}
	assert.Equal(t, "FR380129866", doc.TaxID)
}

func TestBuildSameAsOrder(t *testing.T) {
	e, rels, links := fullDossier()
	doc, err := jsonld.Build(e, rels, links)
	require.NoError(t, err)

	require.Len(t, doc.SameAs, 3)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q1431486", doc.SameAs[0])
	assert.Equal(t, "https://www.linkedin.com/company/orange", doc.SameAs[1])
	assert.Equal(t, "https://twitter.com/orange", doc.SameAs[2])
}

func TestBuildSameAsWithoutQID(t *testing.T) {
	e, rels, links := fullDossier()
	e.QID = ""
	doc, err := jsonld.Build(e, rels, links)
	require.NoError(t, err)

	require.Len(t, doc.SameAs, 2)
	assert.Equal(t, "https://www.linkedin.com/company/orange", doc.SameAs[0])
}

func TestBuildKnowsAbout(t *testing.T) {
	e := entity.New()
	e.Name = "Boursorama"
	e.ExpertiseFR = "Banque, Assurance"

	doc, err := jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Equal(t, []jsonld.LangValue{
		{Language: "fr", Value: "Banque"},
		{Language: "fr", Value: "Assurance"},
	}, doc.KnowsAbout)
}

func TestBuildMultilingualName(t *testing.T) {
	e := entity.New()
	e.Name = "Médiamétrie"
	doc, err := jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Equal(t, "Médiamétrie", doc.Name)

	e.NameEN = "Mediametrie"
	doc, err = jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Equal(t, []jsonld.LangValue{
		{Language: "fr", Value: "Médiamétrie"},
		{Language: "en", Value: "Mediametrie"},
	}, doc.Name)
}

func TestBuildParentOrganization(t *testing.T) {
	e := entity.New()
	e.Name = "Sosh"
	e.ParentOrgName = "Orange"

	doc, err := jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	require.NotNil(t, doc.ParentOrganization)
	assert.Equal(t, "Organization", doc.ParentOrganization.Type)
	assert.Equal(t, "Orange", doc.ParentOrganization.Name)
	assert.Empty(t, doc.ParentOrganization.URL)

	e.ParentOrgQID = "Q1431486"
	doc, err = jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q1431486", doc.ParentOrganization.URL)

	e.ParentOrgName = ""
	doc, err = jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Nil(t, doc.ParentOrganization)
}

func TestBuildSubOrganizationIncludedOnly(t *testing.T) {
	e, rels, links := fullDossier()
	doc, err := jsonld.Build(e, rels, links)
	require.NoError(t, err)

	require.Len(t, doc.SubOrganization, 2)
	assert.Equal(t, "subOrganization", doc.SubOrganization[0].Type)
	assert.Equal(t, "Orange Business", doc.SubOrganization[0].Name)
	assert.Equal(t, "brand", doc.SubOrganization[1].Type)
	assert.Equal(t, "Sosh", doc.SubOrganization[1].Name)
}

func TestBuildAddressGatedOnCity(t *testing.T) {
	e := entity.New()
	e.Name = "Orange"
	e.AddressStreet = "78 Rue Olivier de Serres"
	e.AddressPostal = "75015"

	doc, err := jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Nil(t, doc.Address)

	e.AddressCity = "Paris"
	doc, err = jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	require.NotNil(t, doc.Address)
	assert.Equal(t, "PostalAddress", doc.Address.Type)
	assert.Equal(t, "Paris", doc.Address.AddressLocality)
	assert.Equal(t, "France", doc.Address.AddressCountry)
}

func TestBuildNilEntity(t *testing.T) {
	_, err := jsonld.Build(nil, nil, nil)
	require.Error(t, err)
}

func TestBuildOrgType(t *testing.T) {
	e := entity.New()
	e.Name = "CNRS"
	e.OrgType = entity.OrgTypeGovernment

	doc, err := jsonld.Build(e, nil, entity.NewSocialLinks())
	require.NoError(t, err)
	assert.Equal(t, "GovernmentOrganization", doc.Type)
}
