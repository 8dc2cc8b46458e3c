// Package app provides the application context and dependency
// management for the orbite CLI. It centralizes configuration,
// dependency injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	orbite "github.com/entityscope/orbite"
	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/sources/enrich"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/reconcile"
)

// App represents the orbite application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// working dossier, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Dossier instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	dossier *orbite.Dossier
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("cli", "failed to load configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether progress chatter is suppressed.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// ServeAddr returns the configured HTTP listen address.
func (a *App) ServeAddr() string {
	return a.config.ServeAddr
}

// Dossier returns the working dossier, creating it lazily if needed
// and loading its state file when one exists. Thread-safe; only one
// instance is created per process.
func (a *App) Dossier() (*orbite.Dossier, error) {
	a.mu.RLock()
	if a.dossier != nil {
		d := a.dossier
		a.mu.RUnlock()
		return d, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.dossier != nil {
		return a.dossier, nil
	}

	opts, err := a.buildDossierOptions()
	if err != nil {
		return nil, err
	}
	d, err := orbite.New(opts...)
	if err != nil {
		return nil, err
	}

	// A missing state file just means a fresh dossier.
	if err := d.Load(); err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	a.dossier = d
	return d, nil
}

// Shutdown performs graceful shutdown of the application. Commands
// persist the dossier explicitly after each mutation, so there is
// nothing to flush here.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

// buildDossierOptions constructs dossier options from the app configuration.
func (a *App) buildDossierOptions() ([]orbite.Option, error) {
	opts := []orbite.Option{
		orbite.WithStateFile(a.config.State),
		orbite.WithScoreProfile(a.config.ScoringProfile),
		orbite.WithSourceEnabled(entity.SourceWikidata, a.config.WikidataEnabled),
		orbite.WithSourceEnabled(entity.SourceINSEE, a.config.INSEEEnabled),
	}

	if a.config.HTTPTimeout > 0 {
		opts = append(opts, orbite.WithHTTPTimeout(a.config.HTTPTimeout))
	}

	if a.config.MergePolicy != "" {
		policy := reconcile.Policy(a.config.MergePolicy)
		if !policy.Valid() {
			return nil, errors.NewConfigError("merge", "invalid merge policy "+a.config.MergePolicy, nil)
		}
		opts = append(opts, orbite.WithMergePolicy(policy))
	}

	// Enrichment stays unconfigured without a key; the enrich command
	// reports that instead of failing at startup.
	if a.config.GeminiAPIKey != "" {
		opts = append(opts, orbite.WithEnricher(enrich.New(
			enrich.WithAPIKey(a.config.GeminiAPIKey),
			enrich.WithModel(a.config.EnrichModel),
		)))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithDossier sets a custom dossier instance (useful for testing).
func WithDossier(d *orbite.Dossier) Option {
	return func(a *App) error {
		a.dossier = d
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
