// Package sources defines the adapter contracts for upstream providers
// and a thread-safe registry the engine resolves them from.
//
// A Source searches for candidate organizations and fetches one typed
// record by its source-native id. An Enricher generates best-effort
// fields from the current dossier instead of looking anything up. Both
// return typed errors on failure; callers decide whether to retry,
// surface, or degrade.
package sources

import (
	"context"
	"sort"
	"sync"

	"github.com/entityscope/orbite/pkg/entity"
)

// Source is one upstream provider of organization records.
type Source interface {
	// ID returns the stable source identifier.
	ID() entity.SourceID

	// Name returns the human-readable source name.
	Name() string

	// Search returns candidate organizations for a free-text query.
	Search(ctx context.Context, query string) ([]entity.SearchHit, error)

	// Fetch returns the typed record for a source-native id.
	Fetch(ctx context.Context, id string) (*entity.PartialRecord, error)
}

// Enricher proposes best-effort fields derived from the dossier itself.
// The returned record is advisory and merges like any other source.
type Enricher interface {
	// ID returns the stable source identifier.
	ID() entity.SourceID

	// Name returns the human-readable source name.
	Name() string

	// Enrich generates candidate fields for the current entity.
	Enrich(ctx context.Context, e *entity.Entity) (*entity.PartialRecord, error)
}

// canonicalOrder fixes the display and iteration order of the built-in
// sources. Unknown sources sort after them by id.
var canonicalOrder = map[entity.SourceID]int{
	entity.SourceWikidata: 0,
	entity.SourceINSEE:    1,
	entity.SourceEnrich:   2,
}

func rank(id entity.SourceID) int {
	if r, ok := canonicalOrder[id]; ok {
		return r
	}
	return len(canonicalOrder)
}

// Registry is a thread-safe container of registered sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[entity.SourceID]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[entity.SourceID]Source),
	}
}

// Get returns a source by id.
func (r *Registry) Get(id entity.SourceID) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, found := r.sources[id]
	return src, found
}

// Set registers a source under its own id, replacing any previous one.
func (r *Registry) Set(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[src.ID()] = src
}

// Delete removes a source by id.
func (r *Registry) Delete(id entity.SourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, id)
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// IDs returns the registered source ids in canonical order.
func (r *Registry) IDs() []entity.SourceID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]entity.SourceID, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := rank(ids[i]), rank(ids[j])
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// List returns all registered sources in canonical order.
func (r *Registry) List() []Source {
	ids := r.IDs()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Source, 0, len(ids))
	for _, id := range ids {
		if src, ok := r.sources[id]; ok {
			out = append(out, src)
		}
	}
	return out
}
