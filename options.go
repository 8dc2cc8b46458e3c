package orbite

import (
	"time"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/reconcile"
	"github.com/entityscope/orbite/pkg/score"
	"github.com/entityscope/orbite/pkg/sources"

	"github.com/entityscope/orbite/internal/sources/insee"
	"github.com/entityscope/orbite/internal/sources/wikidata"
	"github.com/entityscope/orbite/internal/transport"
)

// Option is a function that configures a Dossier at construction.
type Option func(*config) error

// config collects construction settings before the Dossier is built.
type config struct {
	statePath   string
	profile     string
	policy      reconcile.Policy
	httpTimeout time.Duration
	enabled     map[entity.SourceID]bool
	sources     []sources.Source
	enricher    sources.Enricher
	custom      bool
}

// defaultConfig returns the settings New starts from: built-in Wikidata
// and INSEE sources, standard scoring, fill-empty merging, and the
// default state file.
func defaultConfig() *config {
	return &config{
		statePath:   constants.DefaultStateFile,
		profile:     score.ProfileStandard,
		policy:      reconcile.PolicyFillEmpty,
		httpTimeout: constants.DefaultHTTPTimeout,
		enabled: map[entity.SourceID]bool{
			entity.SourceWikidata: true,
			entity.SourceINSEE:    true,
		},
	}
}

// WithStateFile sets the path of the working dossier file used by Save
// and Load.
func WithStateFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ConfigError{Component: "state", Message: "state file path must not be empty"}
		}
		c.statePath = path
		return nil
	}
}

// WithScoreProfile selects the named authority-score weight table.
func WithScoreProfile(name string) Option {
	return func(c *config) error {
		if _, err := score.ProfileByName(name); err != nil {
			return err
		}
		c.profile = name
		return nil
	}
}

// WithMergePolicy sets the default policy merges run under.
func WithMergePolicy(p reconcile.Policy) Option {
	return func(c *config) error {
		if !p.Valid() {
			return &errors.ValidationError{Field: "policy", Value: p.String(), Message: "unknown merge policy"}
		}
		c.policy = p
		return nil
	}
}

// WithHTTPTimeout sets the per-call timeout of the built-in sources.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return &errors.ConfigError{Component: "http", Message: "timeout must be positive"}
		}
		c.httpTimeout = d
		return nil
	}
}

// WithSourceEnabled turns a built-in source on or off.
func WithSourceEnabled(id entity.SourceID, enabled bool) Option {
	return func(c *config) error {
		if _, known := c.enabled[id]; !known {
			return &errors.NotFoundError{Resource: "source", ID: id.String()}
		}
		c.enabled[id] = enabled
		return nil
	}
}

// WithSources replaces the built-in sources with the given ones.
// Intended for embedding and tests.
func WithSources(srcs ...sources.Source) Option {
	return func(c *config) error {
		c.sources = srcs
		c.custom = true
		return nil
	}
}

// WithEnricher sets the generative enricher. Without one, Enrich
// reports a configuration error.
func WithEnricher(e sources.Enricher) Option {
	return func(c *config) error {
		c.enricher = e
		return nil
	}
}

// build resolves the final source list: custom sources verbatim, or the
// enabled built-ins sharing one transport client.
func (c *config) build() []sources.Source {
	if c.custom {
		return c.sources
	}
	client := transport.New(transport.WithTimeout(c.httpTimeout))
	var out []sources.Source
	if c.enabled[entity.SourceWikidata] {
		out = append(out, wikidata.New(wikidata.WithTransport(client)))
	}
	if c.enabled[entity.SourceINSEE] {
		out = append(out, insee.New(insee.WithTransport(client)))
	}
	return out
}
