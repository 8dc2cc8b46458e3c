package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/entityscope/orbite/internal/server/response"
	"github.com/entityscope/orbite/pkg/entity"
)

// HandleListRelations returns the relation list.
func (h *Handlers) HandleListRelations(w http.ResponseWriter, _ *http.Request) {
	rels := h.dossier.Relations()
	if rels == nil {
		rels = entity.Relations{}
	}
	response.OK(w, map[string]any{"relations": rels})
}

// relationRequest is the body of POST /relations.
type relationRequest struct {
	Name       string `json:"name"`
	QID        string `json:"qid,omitempty"`
	SchemaType string `json:"schema_type,omitempty"`
	Include    *bool  `json:"include,omitempty"`
}

// HandleAddRelation appends a relation. Include defaults to true.
func (h *Handlers) HandleAddRelation(w http.ResponseWriter, r *http.Request) {
	var req relationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}

	include := true
	if req.Include != nil {
		include = *req.Include
	}
	rel, err := h.dossier.AddRelation(entity.Relation{
		Name:       req.Name,
		QID:        req.QID,
		SchemaType: entity.SchemaType(req.SchemaType),
		Include:    include,
	})
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.Created(w, map[string]any{
		"relation": rel,
		"revision": h.dossier.Revision(),
	})
}

// HandlePatchRelation flips the include flag of one relation.
func (h *Handlers) HandlePatchRelation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Include *bool `json:"include"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}
	if req.Include == nil {
		response.BadRequest(w, "missing include flag", "the include field is required")
		return
	}
	if err := h.dossier.SetRelationInclude(r.PathValue("id"), *req.Include); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"revision": h.dossier.Revision()})
}

// HandleDeleteRelation removes one relation.
func (h *Handlers) HandleDeleteRelation(w http.ResponseWriter, r *http.Request) {
	if err := h.dossier.RemoveRelation(r.PathValue("id")); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"revision": h.dossier.Revision()})
}

// HandleListSocial returns the social link slots.
func (h *Handlers) HandleListSocial(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{"social_links": h.dossier.SocialLinks()})
}

// HandlePutSocial sets one network slot; an empty URL clears it.
func (h *Handlers) HandlePutSocial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}
	if err := h.dossier.SetSocialLink(entity.Network(r.PathValue("network")), req.URL); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{"revision": h.dossier.Revision()})
}
