package sources_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/sources"
)

type stubSource struct {
	id entity.SourceID
}

func (s *stubSource) ID() entity.SourceID { return s.id }
func (s *stubSource) Name() string        { return string(s.id) }

func (s *stubSource) Search(_ context.Context, _ string) ([]entity.SearchHit, error) {
	return nil, nil
}

func (s *stubSource) Fetch(_ context.Context, _ string) (*entity.PartialRecord, error) {
	return &entity.PartialRecord{Source: s.id}, nil
}

func TestRegistrySetGet(t *testing.T) {
	reg := sources.NewRegistry()
	reg.Set(&stubSource{id: entity.SourceWikidata})

	src, found := reg.Get(entity.SourceWikidata)
	require.True(t, found)
	assert.Equal(t, entity.SourceWikidata, src.ID())

	_, found = reg.Get(entity.SourceINSEE)
	assert.False(t, found)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryCanonicalOrder(t *testing.T) {
	reg := sources.NewRegistry()
	reg.Set(&stubSource{id: "zebra"})
	reg.Set(&stubSource{id: entity.SourceINSEE})
	reg.Set(&stubSource{id: "annuaire"})
	reg.Set(&stubSource{id: entity.SourceWikidata})

	assert.Equal(t, []entity.SourceID{
		entity.SourceWikidata,
		entity.SourceINSEE,
		"annuaire",
		"zebra",
	}, reg.IDs(), "built-ins first, extras sorted by id")

	list := reg.List()
	require.Len(t, list, 4)
	assert.Equal(t, entity.SourceWikidata, list[0].ID())
}

func TestRegistryDelete(t *testing.T) {
	reg := sources.NewRegistry()
	reg.Set(&stubSource{id: entity.SourceWikidata})
	reg.Delete(entity.SourceWikidata)

	assert.Zero(t, reg.Len())
}

func TestRegistryReplace(t *testing.T) {
	reg := sources.NewRegistry()
	first := &stubSource{id: entity.SourceINSEE}
	second := &stubSource{id: entity.SourceINSEE}

	reg.Set(first)
	reg.Set(second)

	src, found := reg.Get(entity.SourceINSEE)
	require.True(t, found)
	assert.Same(t, second, src)
	assert.Equal(t, 1, reg.Len())
}
