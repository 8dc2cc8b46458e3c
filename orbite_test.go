package orbite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orbite "github.com/entityscope/orbite"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/reconcile"
	"github.com/entityscope/orbite/pkg/sources"
)

// stubSource is a scripted source for facade tests.
type stubSource struct {
	id        entity.SourceID
	hits      []entity.SearchHit
	record    *entity.PartialRecord
	searchErr error
	fetchErr  error
}

func (s *stubSource) ID() entity.SourceID { return s.id }
func (s *stubSource) Name() string        { return string(s.id) }

func (s *stubSource) Search(_ context.Context, _ string) ([]entity.SearchHit, error) {
	return s.hits, s.searchErr
}

func (s *stubSource) Fetch(_ context.Context, _ string) (*entity.PartialRecord, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	rec := *s.record
	return &rec, nil
}

func newTestDossier(t *testing.T, srcs ...*stubSource) *orbite.Dossier {
	t.Helper()
	list := make([]sources.Source, len(srcs))
	for i, s := range srcs {
		list[i] = s
	}
	d, err := orbite.New(
		orbite.WithStateFile(filepath.Join(t.TempDir(), "orbite.json")),
		orbite.WithSources(list...),
	)
	require.NoError(t, err)
	return d
}

func TestSearchDegradesFailingSource(t *testing.T) {
	working := &stubSource{
		id:   entity.SourceWikidata,
		hits: []entity.SearchHit{{Source: entity.SourceWikidata, ID: "Q1", Label: "Acme"}},
	}
	broken := &stubSource{
		id:        entity.SourceINSEE,
		searchErr: errors.NewFetchError("insee", "search", errors.ReasonTransient, 0, errors.New("connection refused")),
	}
	d := newTestDossier(t, working, broken)

	hits, err := d.Search(context.Background(), "", "acme")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Q1", hits[0].ID)
}

func TestSearchUnknownSource(t *testing.T) {
	d := newTestDossier(t)
	_, err := d.Search(context.Background(), "nonexistent", "acme")
	assert.True(t, errors.IsNotFound(err))
}

func TestMergeFillsAndJournals(t *testing.T) {
	src := &stubSource{
		id: entity.SourceWikidata,
		record: &entity.PartialRecord{
			Source:  entity.SourceWikidata,
			Name:    "Acme",
			QID:     "Q1",
			Website: "https://acme.example",
			Relations: []entity.Relation{
				{QID: "Q2", Name: "Acme Labs"},
			},
		},
	}
	d := newTestDossier(t, src)
	require.NoError(t, d.SetField(entity.FieldName, "ACME Corp"))

	changes, err := d.Merge(context.Background(), entity.SourceWikidata, "Q1")
	require.NoError(t, err)

	e := d.Entity()
	assert.Equal(t, "ACME Corp", e.Name, "existing name must survive the merge")
	assert.Equal(t, "Q1", e.QID)
	assert.True(t, e.FromWikidata)

	require.Len(t, changes.Conflicts, 1)
	assert.Equal(t, entity.FieldName, changes.Conflicts[0].Field)
	assert.Equal(t, d.Conflicts(), changes.Conflicts)

	rels := d.Relations()
	require.Len(t, rels, 1)
	assert.Equal(t, "Q2", rels[0].QID)
	assert.True(t, rels[0].Include)
}

func TestMergeFetchFailureLeavesDossierUntouched(t *testing.T) {
	src := &stubSource{
		id:       entity.SourceWikidata,
		fetchErr: errors.NewFetchError("wikidata", "fetch", errors.ReasonTransient, 503, errors.New("upstream down")),
	}
	d := newTestDossier(t, src)
	before := d.Revision()

	_, err := d.Merge(context.Background(), entity.SourceWikidata, "Q1")
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
	assert.Equal(t, before, d.Revision())
	assert.True(t, d.Entity().IsZero())
}

func TestMergePolicyOverride(t *testing.T) {
	src := &stubSource{
		id:     entity.SourceINSEE,
		record: &entity.PartialRecord{Source: entity.SourceINSEE, Name: "Acme SAS"},
	}
	d := newTestDossier(t, src)
	require.NoError(t, d.SetField(entity.FieldName, "Acme"))

	_, err := d.Merge(context.Background(), entity.SourceINSEE, "123456789",
		orbite.MergePolicy(reconcile.PolicyPreferIncoming))
	require.NoError(t, err)
	assert.Equal(t, "Acme SAS", d.Entity().Name)
}

func TestScoreNeverDecreasesUnderMerge(t *testing.T) {
	src := &stubSource{
		id:     entity.SourceWikidata,
		record: &entity.PartialRecord{Source: entity.SourceWikidata, QID: "Q1", Website: "https://acme.example"},
	}
	d := newTestDossier(t, src)
	before := d.Score()

	_, err := d.Merge(context.Background(), entity.SourceWikidata, "Q1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Score(), before)
	assert.Equal(t, 35, d.Score())
}

func TestRelationLifecycle(t *testing.T) {
	d := newTestDossier(t)

	rel, err := d.AddRelation(entity.Relation{Name: "Acme Labs", QID: "Q2", Include: true})
	require.NoError(t, err)
	assert.NotEmpty(t, rel.ID)
	assert.Equal(t, entity.SchemaSubOrganization, rel.SchemaType)

	require.NoError(t, d.SetRelationInclude(rel.ID, false))
	assert.False(t, d.Relations()[0].Include)

	require.NoError(t, d.RemoveRelation(rel.ID))
	assert.Empty(t, d.Relations())

	err = d.RemoveRelation("missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestAddRelationValidation(t *testing.T) {
	d := newTestDossier(t)

	_, err := d.AddRelation(entity.Relation{QID: "Q2"})
	assert.True(t, errors.IsValidationError(err), "name is required")

	_, err = d.AddRelation(entity.Relation{Name: "Acme Labs", QID: "not-a-qid"})
	assert.True(t, errors.IsValidationError(err))
}

func TestSocialLinksAndReset(t *testing.T) {
	d := newTestDossier(t)

	require.NoError(t, d.SetSocialLink(entity.NetworkLinkedIn, "https://www.linkedin.com/company/acme"))
	assert.Equal(t, 1, d.SocialLinks().Count())

	require.NoError(t, d.SetSocialLink(entity.NetworkLinkedIn, ""))
	assert.Equal(t, 0, d.SocialLinks().Count())

	require.NoError(t, d.SetField(entity.FieldName, "Acme"))
	d.Reset()
	assert.True(t, d.Entity().IsZero())
	assert.Empty(t, d.Conflicts())
}

func TestOnUpdatedFiresPerMutation(t *testing.T) {
	d := newTestDossier(t)

	var revisions []uint64
	d.OnUpdated(func(rev uint64) {
		revisions = append(revisions, rev)
	})

	require.NoError(t, d.SetField(entity.FieldName, "Acme"))
	require.NoError(t, d.SetSocialLink(entity.NetworkTwitter, "https://twitter.com/acme"))
	d.Reset()

	assert.Equal(t, []uint64{1, 2, 3}, revisions)
}

func TestEnrichWithoutEnricher(t *testing.T) {
	d := newTestDossier(t)
	_, err := d.Enrich(context.Background())
	require.Error(t, err)
	assert.False(t, d.HasEnricher())
}
