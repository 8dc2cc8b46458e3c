package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entityscope/orbite/pkg/entity"
)

func testRelations() entity.Relations {
	return entity.Relations{
		{ID: "r1", QID: "Q3588337", Name: "Orange Business", SchemaType: entity.SchemaSubOrganization, Include: true},
		{ID: "r2", QID: "", Name: "Sosh", SchemaType: entity.SchemaBrand, Include: false},
		{ID: "r3", QID: "Q1431486", Name: "Orange España", SchemaType: entity.SchemaSubOrganization, Include: true},
	}
}

func TestRelationsIncluded(t *testing.T) {
	included := testRelations().Included()

	assert.Len(t, included, 2)
	assert.Equal(t, "r1", included[0].ID)
	assert.Equal(t, "r3", included[1].ID)
}

func TestRelationsFind(t *testing.T) {
	rs := testRelations()

	r, ok := rs.Find("r2")
	assert.True(t, ok)
	assert.Equal(t, "Sosh", r.Name)

	_, ok = rs.Find("missing")
	assert.False(t, ok)
}

func TestRelationsContainsQID(t *testing.T) {
	rs := testRelations()

	assert.True(t, rs.ContainsQID("Q3588337"))
	assert.False(t, rs.ContainsQID("Q42"))
	assert.False(t, rs.ContainsQID(""), "empty ids never match")
}

func TestRelationsRemove(t *testing.T) {
	rs := testRelations()

	out, removed := rs.Remove("r2")
	assert.True(t, removed)
	assert.Len(t, out, 2)
	assert.Equal(t, "r1", out[0].ID)
	assert.Equal(t, "r3", out[1].ID)

	out, removed = out.Remove("missing")
	assert.False(t, removed)
	assert.Len(t, out, 2)
}

func TestRelationsClone(t *testing.T) {
	rs := testRelations()
	c := rs.Clone()
	c[0].Name = "changed"

	assert.Equal(t, "Orange Business", rs[0].Name)
	assert.Nil(t, entity.Relations(nil).Clone())
}

func TestRelationWikidataURL(t *testing.T) {
	r := entity.Relation{QID: "Q3588337"}
	assert.Equal(t, "https://www.wikidata.org/wiki/Q3588337", r.WikidataURL())

	blank := entity.Relation{Name: "Sosh"}
	assert.Empty(t, blank.WikidataURL())
}

func TestSchemaTypeValid(t *testing.T) {
	for _, st := range entity.SchemaTypes() {
		assert.True(t, st.Valid(), "type %s", st)
	}
	assert.False(t, entity.SchemaType("franchise").Valid())
}
