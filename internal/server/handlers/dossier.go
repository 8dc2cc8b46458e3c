package handlers

import (
	"encoding/json"
	"net/http"

	orbite "github.com/entityscope/orbite"
	"github.com/entityscope/orbite/internal/server/response"
	"github.com/entityscope/orbite/pkg/entity"
	"github.com/entityscope/orbite/pkg/reconcile"
)

// HandleGetEntity returns the current entity.
func (h *Handlers) HandleGetEntity(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"entity":   h.dossier.Entity(),
		"revision": h.dossier.Revision(),
	})
}

// HandlePatchEntity applies manual field edits. The body is a flat
// field→value object; manual edits may overwrite anything.
func (h *Handlers) HandlePatchEntity(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}
	if len(fields) == 0 {
		response.BadRequest(w, "no fields to set", "")
		return
	}
	for name, value := range fields {
		if err := h.dossier.SetField(entity.Field(name), value); err != nil {
			response.ErrorFromType(w, err)
			return
		}
	}
	response.OK(w, map[string]any{
		"entity":   h.dossier.Entity(),
		"revision": h.dossier.Revision(),
	})
}

// HandleScore returns the authority score with its breakdown.
func (h *Handlers) HandleScore(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.dossier.ScoreBreakdown())
}

// HandleSearch queries sources. Query parameters: q (required) and
// source (optional; empty queries every registered source).
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "missing query", "the q parameter is required")
		return
	}
	src := entity.SourceID(r.URL.Query().Get("source"))

	hits, err := h.dossier.Search(r.Context(), src, query)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if hits == nil {
		hits = []entity.SearchHit{}
	}
	response.OK(w, map[string]any{"hits": hits})
}

// mergeRequest is the body of POST /merge/{source}.
type mergeRequest struct {
	ID     string `json:"id"`
	Policy string `json:"policy,omitempty"`
}

// HandleMerge fetches a record from the path source and merges it.
func (h *Handlers) HandleMerge(w http.ResponseWriter, r *http.Request) {
	src := entity.SourceID(r.PathValue("source"))

	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}
	if req.ID == "" {
		response.BadRequest(w, "missing record id", "the id field is required")
		return
	}

	var opts []orbite.MergeOption
	if req.Policy != "" {
		policy := reconcile.Policy(req.Policy)
		if !policy.Valid() {
			response.BadRequest(w, "unknown merge policy", req.Policy)
			return
		}
		opts = append(opts, orbite.MergePolicy(policy))
	}

	changes, err := h.dossier.Merge(r.Context(), src, req.ID, opts...)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"changes":  changes,
		"entity":   h.dossier.Entity(),
		"score":    h.dossier.Score(),
		"revision": h.dossier.Revision(),
	})
}

// HandleEnrich runs the generative enricher against the dossier.
func (h *Handlers) HandleEnrich(w http.ResponseWriter, r *http.Request) {
	changes, err := h.dossier.Enrich(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"changes":  changes,
		"entity":   h.dossier.Entity(),
		"revision": h.dossier.Revision(),
	})
}

// HandleReset discards the dossier state.
func (h *Handlers) HandleReset(w http.ResponseWriter, _ *http.Request) {
	h.dossier.Reset()
	response.OK(w, map[string]any{"revision": h.dossier.Revision()})
}
