package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orbite "github.com/entityscope/orbite"
	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/sources"
)

// stubSource is a scripted source for command tests.
type stubSource struct {
	id     entity.SourceID
	hits   []entity.SearchHit
	record *entity.PartialRecord
}

func (s *stubSource) ID() entity.SourceID { return s.id }
func (s *stubSource) Name() string        { return string(s.id) }

func (s *stubSource) Search(_ context.Context, _ string) ([]entity.SearchHit, error) {
	return s.hits, nil
}

func (s *stubSource) Fetch(_ context.Context, _ string) (*entity.PartialRecord, error) {
	rec := *s.record
	return &rec, nil
}

// newMockApp wires a real dossier behind an appcontext mock so command
// behavior can be observed through the dossier and its state file.
func newMockApp(t *testing.T, stubs ...sources.Source) (*appcontext.Mock, *orbite.Dossier, string) {
	t.Helper()

	statePath := filepath.Join(t.TempDir(), "orbite.json")
	dossier, err := orbite.New(
		orbite.WithStateFile(statePath),
		orbite.WithSources(stubs...),
	)
	require.NoError(t, err)

	app := &appcontext.Mock{
		DossierFunc: func() (*orbite.Dossier, error) { return dossier, nil },
	}
	return app, dossier, statePath
}

func wikidataStub() *stubSource {
	return &stubSource{
		id:   entity.SourceWikidata,
		hits: []entity.SearchHit{{Source: entity.SourceWikidata, ID: "Q1431486", Label: "Orange"}},
		record: &entity.PartialRecord{
			Source:  entity.SourceWikidata,
			Name:    "Orange",
			QID:     "Q1431486",
			Website: "https://www.orange.fr",
		},
	}
}

func TestSetCommand(t *testing.T) {
	app, dossier, statePath := newMockApp(t)

	cmd := NewSetCommand(app)
	cmd.SetArgs([]string{"name=Orange", "website=https://www.orange.fr"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Orange", dossier.Entity().Name)
	assert.Equal(t, "https://www.orange.fr", dossier.Entity().Website)
	assert.FileExists(t, statePath, "mutating commands persist the dossier")
}

func TestSetCommandRejectsBareArgument(t *testing.T) {
	app, dossier, _ := newMockApp(t)

	cmd := NewSetCommand(app)
	cmd.SetArgs([]string{"name"})
	require.Error(t, cmd.Execute())
	assert.True(t, dossier.Entity().IsZero())
}

func TestMergeCommand(t *testing.T) {
	app, dossier, statePath := newMockApp(t, wikidataStub())

	cmd := NewMergeCommand(app)
	cmd.SetArgs([]string{"wikidata", "Q1431486"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Q1431486", dossier.Entity().QID)
	assert.Equal(t, 35, dossier.Score())
	assert.FileExists(t, statePath)
}

func TestMergeCommandInvalidPolicy(t *testing.T) {
	app, _, _ := newMockApp(t, wikidataStub())

	cmd := NewMergeCommand(app)
	cmd.SetArgs([]string{"wikidata", "Q1431486", "--policy", "overwrite-all"})
	assert.Error(t, cmd.Execute())
}

func TestMergeOptions(t *testing.T) {
	opts, err := mergeOptions("")
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = mergeOptions("prefer-incoming")
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = mergeOptions("bogus")
	assert.Error(t, err)
}

func TestEnrichCommandWithoutEnricher(t *testing.T) {
	app, _, _ := newMockApp(t)

	cmd := NewEnrichCommand(app)
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute(), "enrich without a configured enricher must fail")
}

func TestRelationCommands(t *testing.T) {
	app, dossier, _ := newMockApp(t)

	add := NewRelationCommand(app)
	add.SetArgs([]string{"add", "Orange Business", "--qid", "Q3351380"})
	require.NoError(t, add.Execute())

	rels := dossier.Relations()
	require.Len(t, rels, 1)
	assert.True(t, rels[0].Include)
	assert.Equal(t, entity.SchemaSubOrganization, rels[0].SchemaType)

	exclude := NewRelationCommand(app)
	exclude.SetArgs([]string{"exclude", rels[0].ID})
	require.NoError(t, exclude.Execute())
	assert.False(t, dossier.Relations()[0].Include)

	remove := NewRelationCommand(app)
	remove.SetArgs([]string{"remove", rels[0].ID})
	require.NoError(t, remove.Execute())
	assert.Empty(t, dossier.Relations())
}

func TestRelationRemoveUnknownID(t *testing.T) {
	app, _, _ := newMockApp(t)

	cmd := NewRelationCommand(app)
	cmd.SetArgs([]string{"remove", "rel-nonexistent"})
	assert.Error(t, cmd.Execute())
}

func TestSocialSetAndClear(t *testing.T) {
	app, dossier, _ := newMockApp(t)

	set := NewSocialCommand(app)
	set.SetArgs([]string{"set", "linkedin", "https://www.linkedin.com/company/orange"})
	require.NoError(t, set.Execute())
	assert.Equal(t, 1, dossier.SocialLinks().Count())

	clear := NewSocialCommand(app)
	clear.SetArgs([]string{"set", "linkedin"})
	require.NoError(t, clear.Execute())
	assert.Equal(t, 0, dossier.SocialLinks().Count())
}

func TestResetCommand(t *testing.T) {
	app, dossier, _ := newMockApp(t)
	require.NoError(t, dossier.SetField(entity.FieldName, "Orange"))

	cmd := NewResetCommand(app)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.True(t, dossier.Entity().IsZero())
}

func TestRenderCommandWritesFile(t *testing.T) {
	app, dossier, _ := newMockApp(t)
	require.NoError(t, dossier.SetField(entity.FieldName, "Orange"))

	outPath := filepath.Join(t.TempDir(), "diagram.svg")
	cmd := NewRenderCommand(app)
	cmd.SetArgs([]string{"--file", outPath})
	require.NoError(t, cmd.Execute())

	svg, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Orange")
}

func TestJSONLDCommandWritesFile(t *testing.T) {
	app, dossier, _ := newMockApp(t)
	require.NoError(t, dossier.SetField(entity.FieldName, "Orange"))

	outPath := filepath.Join(t.TempDir(), "entity.jsonld")
	cmd := NewJSONLDCommand(app)
	cmd.SetArgs([]string{"--file", outPath})
	require.NoError(t, cmd.Execute())

	doc, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "https://schema.org")
}

func TestExportImportCommands(t *testing.T) {
	app, dossier, _ := newMockApp(t)
	require.NoError(t, dossier.SetField(entity.FieldName, "Orange"))

	envPath := filepath.Join(t.TempDir(), "export.json")
	export := NewExportCommand(app)
	export.SetArgs([]string{"--file", envPath})
	require.NoError(t, export.Execute())

	dossier.Reset()
	require.True(t, dossier.Entity().IsZero())

	imp := NewImportCommand(app)
	imp.SetArgs([]string{envPath})
	require.NoError(t, imp.Execute())
	assert.Equal(t, "Orange", dossier.Entity().Name)
}

func TestImportCommandMissingFile(t *testing.T) {
	app, _, _ := newMockApp(t)

	cmd := NewImportCommand(app)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.json")})
	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	app := &appcontext.Mock{
		VersionFunc: func() string { return "1.2.3" },
	}

	var out bytes.Buffer
	cmd := NewVersionCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "orbite 1.2.3")
}
