package orbite

import "sync"

// UpdatedHook is called after a state mutation with the new revision.
type UpdatedHook func(revision uint64)

// hooks manages event callbacks for dossier changes.
type hooks struct {
	mu      sync.RWMutex
	updated []UpdatedHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

// onUpdated registers a callback for state mutations.
func (h *hooks) onUpdated(fn UpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updated = append(h.updated, fn)
}

// fireUpdated invokes every registered callback with the revision.
// Callbacks run on the mutating goroutine, outside the dossier lock.
func (h *hooks) fireUpdated(revision uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.updated {
		fn(revision)
	}
}
