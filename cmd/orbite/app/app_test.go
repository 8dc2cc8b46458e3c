package app

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		State:           filepath.Join(t.TempDir(), "orbite.json"),
		ScoringProfile:  "standard",
		WikidataEnabled: true,
		INSEEEnabled:    true,
		LogFormat:       "json",
		LogOutput:       "stderr",
	}
}

func TestNewApp(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2026-01-01", "test", WithConfig(newTestConfig(t)))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
}

func TestAppOptions(t *testing.T) {
	logger := zerolog.Nop()
	config := newTestConfig(t)
	config.Format = "yaml"
	config.Quiet = true

	app, err := New("dev", "unknown", "unknown", "unknown",
		WithConfig(config),
		WithLogger(&logger),
	)
	require.NoError(t, err)

	assert.Equal(t, "yaml", app.OutputFormat())
	assert.True(t, app.Quiet())
	assert.Same(t, &logger, app.Logger())
}

func TestDossierIsSingleton(t *testing.T) {
	app, err := New("dev", "unknown", "unknown", "unknown", WithConfig(newTestConfig(t)))
	require.NoError(t, err)

	first, err := app.Dossier()
	require.NoError(t, err)
	second, err := app.Dossier()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDossierDisabledSources(t *testing.T) {
	config := newTestConfig(t)
	config.INSEEEnabled = false

	app, err := New("dev", "unknown", "unknown", "unknown", WithConfig(config))
	require.NoError(t, err)

	dossier, err := app.Dossier()
	require.NoError(t, err)
	require.Len(t, dossier.Sources(), 1)
	assert.Equal(t, "wikidata", dossier.Sources()[0].String())
}

func TestDossierInvalidMergePolicy(t *testing.T) {
	config := newTestConfig(t)
	config.MergePolicy = "overwrite-all"

	app, err := New("dev", "unknown", "unknown", "unknown", WithConfig(config))
	require.NoError(t, err)

	_, err = app.Dossier()
	assert.Error(t, err)
}

func TestDossierEnricherFromKey(t *testing.T) {
	config := newTestConfig(t)
	config.GeminiAPIKey = "test-key"

	app, err := New("dev", "unknown", "unknown", "unknown", WithConfig(config))
	require.NoError(t, err)

	dossier, err := app.Dossier()
	require.NoError(t, err)
	assert.True(t, dossier.HasEnricher())

	// Without a key the enricher stays unconfigured.
	bare, err := New("dev", "unknown", "unknown", "unknown", WithConfig(newTestConfig(t)))
	require.NoError(t, err)
	bareDossier, err := bare.Dossier()
	require.NoError(t, err)
	assert.False(t, bareDossier.HasEnricher())
}

func TestExecuteVersionFlag(t *testing.T) {
	app, err := New("9.9.9", "abc", "now", "test", WithConfig(newTestConfig(t)))
	require.NoError(t, err)

	root := app.createRootCommand()
	assert.NotNil(t, root)
	assert.Equal(t, "orbite", root.Use)
	assert.Equal(t, "9.9.9", root.Version)
}
