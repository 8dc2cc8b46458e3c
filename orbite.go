// Package orbite assembles organization dossiers from public registries.
//
// A Dossier is the single working record: source adapters (Wikidata,
// the INSEE company registry, an optional generative enricher) produce
// typed partial records, the reconcile engine folds them in under
// fill-empty semantics, and the projection packages render the result
// as an SVG authority diagram, a schema.org JSON-LD document, or a
// Markdown report. The Dossier owns all mutable state; callers hold no
// globals.
package orbite

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/entityscope/orbite/pkg/diagram"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/errors"
	"github.com/entityscope/orbite/pkg/jsonld"
	"github.com/entityscope/orbite/pkg/logging"
	"github.com/entityscope/orbite/pkg/reconcile"
	"github.com/entityscope/orbite/pkg/report"
	"github.com/entityscope/orbite/pkg/score"
	"github.com/entityscope/orbite/pkg/sources"
)

// Dossier is one organization record under construction, together with
// its relations, social links, conflict journal, and the sources it is
// assembled from. All methods are safe for concurrent use; serve mode
// shares one Dossier across handlers.
type Dossier struct {
	mu        sync.RWMutex
	entity    *entity.Entity
	relations entity.Relations
	links     entity.SocialLinks
	conflicts []reconcile.Conflict

	registry *sources.Registry
	enricher sources.Enricher
	merger   *reconcile.Merger
	profile  score.Profile

	statePath string
	stateID   string
	revision  uint64

	hooks *hooks
}

// New creates an empty Dossier with the given options applied. Without
// options it carries the built-in Wikidata and INSEE sources, the
// standard score profile, and the default state file in the working
// directory.
func New(opts ...Option) (*Dossier, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	merger, err := reconcile.New(reconcile.WithPolicy(cfg.policy))
	if err != nil {
		return nil, err
	}
	profile, err := score.ProfileByName(cfg.profile)
	if err != nil {
		return nil, err
	}

	d := &Dossier{
		entity:    entity.New(),
		links:     entity.NewSocialLinks(),
		registry:  sources.NewRegistry(),
		enricher:  cfg.enricher,
		merger:    merger,
		profile:   profile,
		statePath: cfg.statePath,
		hooks:     newHooks(),
	}
	for _, src := range cfg.build() {
		d.registry.Set(src)
	}
	return d, nil
}

// Entity returns a copy of the current entity.
func (d *Dossier) Entity() *entity.Entity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.entity.Clone()
}

// Relations returns a copy of the relation list.
func (d *Dossier) Relations() entity.Relations {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.relations.Clone()
}

// SocialLinks returns a copy of the social link set.
func (d *Dossier) SocialLinks() entity.SocialLinks {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.links.Clone()
}

// Conflicts returns a copy of the conflict journal: every value a merge
// suppressed or replaced, oldest first.
func (d *Dossier) Conflicts() []reconcile.Conflict {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]reconcile.Conflict, len(d.conflicts))
	copy(out, d.conflicts)
	return out
}

// Revision returns the number of state mutations since creation or the
// last import. Serve mode broadcasts it so clients know when to
// refresh.
func (d *Dossier) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// Sources returns the registered source ids in canonical order.
func (d *Dossier) Sources() []entity.SourceID {
	return d.registry.IDs()
}

// HasEnricher reports whether a generative enricher is configured.
func (d *Dossier) HasEnricher() bool {
	return d.enricher != nil
}

// Score returns the authority score of the current entity under the
// configured profile.
func (d *Dossier) Score() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return score.Compute(d.entity, d.profile)
}

// ScoreBreakdown returns the score with its per-weight explanation.
func (d *Dossier) ScoreBreakdown() score.Breakdown {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return score.Explain(d.entity, d.profile)
}

// Search queries one source, or every registered source in canonical
// order when src is empty. A failing source degrades to zero hits and a
// log line; Search only errors when src names an unknown source.
func (d *Dossier) Search(ctx context.Context, src entity.SourceID, query string) ([]entity.SearchHit, error) {
	var queried []sources.Source
	if src == "" {
		queried = d.registry.List()
	} else {
		s, ok := d.registry.Get(src)
		if !ok {
			return nil, &errors.NotFoundError{Resource: "source", ID: src.String()}
		}
		queried = []sources.Source{s}
	}

	var hits []entity.SearchHit
	for _, s := range queried {
		found, err := s.Search(ctx, query)
		if err != nil {
			logging.Warn().
				Str("source", s.ID().String()).
				Str("query", query).
				Err(err).
				Msg("source search failed, continuing with no hits")
			continue
		}
		hits = append(hits, found...)
	}
	return hits, nil
}

// MergeOption adjusts a single Merge call.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	policy reconcile.Policy
}

// MergePolicy overrides the dossier's merge policy for one call.
func MergePolicy(p reconcile.Policy) MergeOption {
	return func(c *mergeConfig) {
		c.policy = p
	}
}

// Merge fetches the record id from the named source and folds it into
// the entity. Harvested relations are appended, conflicts are
// journaled, and provenance flags are set. The fetch failing leaves the
// dossier untouched.
func (d *Dossier) Merge(ctx context.Context, src entity.SourceID, id string, opts ...MergeOption) (reconcile.Changes, error) {
	s, ok := d.registry.Get(src)
	if !ok {
		return reconcile.Changes{}, &errors.NotFoundError{Resource: "source", ID: src.String()}
	}
	rec, err := s.Fetch(ctx, id)
	if err != nil {
		logging.Warn().
			Str("source", src.String()).
			Str("id", id).
			Err(err).
			Msg("source fetch failed, dossier unchanged")
		return reconcile.Changes{}, err
	}
	return d.mergeRecord(rec, opts...)
}

// Enrich asks the configured generative enricher for best-effort
// descriptive fields and merges them fill-empty. The whole proposal is
// discarded on any transport or parse failure.
func (d *Dossier) Enrich(ctx context.Context) (reconcile.Changes, error) {
	if d.enricher == nil {
		return reconcile.Changes{}, &errors.ConfigError{Component: "enrich", Message: "no enricher configured"}
	}
	rec, err := d.enricher.Enrich(ctx, d.Entity())
	if err != nil {
		logging.Warn().Err(err).Msg("enrichment failed, dossier unchanged")
		return reconcile.Changes{}, err
	}
	// Enrichment is advisory and never replaces anything, whatever the
	// dossier's default policy says.
	return d.mergeRecord(rec, MergePolicy(reconcile.PolicyFillEmpty))
}

// mergeRecord applies a fetched record under the dossier's (or the
// call's) policy.
func (d *Dossier) mergeRecord(rec *entity.PartialRecord, opts ...MergeOption) (reconcile.Changes, error) {
	cfg := mergeConfig{policy: d.merger.Policy()}
	for _, opt := range opts {
		opt(&cfg)
	}
	merger := d.merger
	if cfg.policy != merger.Policy() {
		m, err := reconcile.New(reconcile.WithPolicy(cfg.policy))
		if err != nil {
			return reconcile.Changes{}, err
		}
		merger = m
	}

	d.mu.Lock()
	changes, err := merger.Merge(d.entity, d.relations, rec)
	if err != nil {
		d.mu.Unlock()
		return reconcile.Changes{}, err
	}
	d.relations = append(d.relations, changes.Harvested...)
	d.conflicts = append(d.conflicts, changes.Conflicts...)
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	logging.Info().
		Str("source", rec.Source.String()).
		Str("policy", changes.Policy.String()).
		Int("assigned", len(changes.Assigned)).
		Int("conflicts", len(changes.Conflicts)).
		Int("harvested", len(changes.Harvested)).
		Msg("record merged")
	for _, c := range changes.Conflicts {
		logging.Warn().
			Str("field", c.Field.String()).
			Str("kept", c.Kept).
			Str("dropped", c.Dropped).
			Str("source", c.Source.String()).
			Msg("merge conflict journaled")
	}

	d.hooks.fireUpdated(rev)
	return changes, nil
}

// SetField writes one entity field. Manual edits are the sanctioned
// overwrite path: they replace existing values without journaling.
func (d *Dossier) SetField(f entity.Field, value string) error {
	d.mu.Lock()
	if err := d.entity.Set(f, value); err != nil {
		d.mu.Unlock()
		return err
	}
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
	return nil
}

// AddRelation appends a relation. A missing local id is generated; a
// missing schema type defaults to subOrganization.
func (d *Dossier) AddRelation(rel entity.Relation) (entity.Relation, error) {
	if rel.Name == "" {
		return entity.Relation{}, &errors.ValidationError{Field: "name", Message: "relation name required"}
	}
	if rel.QID != "" && !entity.ValidQID(rel.QID) {
		return entity.Relation{}, &errors.ValidationError{Field: "qid", Value: rel.QID, Message: "not a Wikidata id"}
	}
	if rel.ID == "" {
		rel.ID = uuid.NewString()
	}
	if rel.SchemaType == "" {
		rel.SchemaType = entity.SchemaSubOrganization
	}
	if !rel.SchemaType.Valid() {
		return entity.Relation{}, &errors.ValidationError{Field: "schema_type", Value: rel.SchemaType.String(), Message: "unknown relation type"}
	}

	d.mu.Lock()
	d.relations = append(d.relations, rel)
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
	return rel, nil
}

// SetRelationInclude flips whether the relation participates in
// projections.
func (d *Dossier) SetRelationInclude(id string, include bool) error {
	d.mu.Lock()
	found := false
	for i := range d.relations {
		if d.relations[i].ID == id {
			d.relations[i].Include = include
			found = true
			break
		}
	}
	if !found {
		d.mu.Unlock()
		return &errors.NotFoundError{Resource: "relation", ID: id}
	}
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
	return nil
}

// RemoveRelation deletes a relation by local id.
func (d *Dossier) RemoveRelation(id string) error {
	d.mu.Lock()
	rest, removed := d.relations.Remove(id)
	if !removed {
		d.mu.Unlock()
		return &errors.NotFoundError{Resource: "relation", ID: id}
	}
	d.relations = rest
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
	return nil
}

// SetSocialLink sets a network slot to the given profile URL; an empty
// URL clears the slot. Networks outside the fixed set are accepted and
// render with fallback styling.
func (d *Dossier) SetSocialLink(network entity.Network, url string) error {
	if network == "" {
		return &errors.ValidationError{Field: "network", Message: "network name required"}
	}

	d.mu.Lock()
	d.links[network] = url
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
	return nil
}

// Reset discards the entity, relations, social links, and conflict
// journal, leaving a fresh empty dossier. Sources and configuration are
// kept.
func (d *Dossier) Reset() {
	d.mu.Lock()
	d.entity = entity.New()
	d.relations = nil
	d.links = entity.NewSocialLinks()
	d.conflicts = nil
	d.revision++
	rev := d.revision
	d.mu.Unlock()

	d.hooks.fireUpdated(rev)
	logging.Info().Msg("dossier reset")
}

// RenderDiagram returns the authority diagram of the current state as
// an SVG document. The score disc uses the dossier's configured
// profile. Identical state renders byte-identical output.
func (d *Dossier) RenderDiagram() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return diagram.Render(d.entity, d.relations, d.links, d.profile)
}

// JSONLD returns the schema.org Organization document of the current
// state.
func (d *Dossier) JSONLD() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, err := jsonld.Build(d.entity, d.relations, d.links)
	if err != nil {
		return nil, err
	}
	return doc.Marshal()
}

// WriteReport writes the Markdown audit report of the current state to
// w.
func (d *Dossier) WriteReport(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return report.Write(w, d.entity, d.relations, d.links, d.conflicts, score.Explain(d.entity, d.profile))
}

// OnUpdated registers a callback invoked after every state mutation
// with the new revision. Callbacks run synchronously on the mutating
// goroutine and must not call back into the Dossier.
func (d *Dossier) OnUpdated(fn UpdatedHook) {
	d.hooks.onUpdated(fn)
}
