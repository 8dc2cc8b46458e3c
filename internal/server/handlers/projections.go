package handlers

import (
	"net/http"

	"github.com/entityscope/orbite/internal/server/response"
	"github.com/entityscope/orbite/pkg/jsonld"
)

// HandleDiagram returns the authority diagram as SVG.
func (h *Handlers) HandleDiagram(w http.ResponseWriter, _ *http.Request) {
	svg := h.dossier.RenderDiagram()
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		h.logger.Error().Err(err).Msg("failed to write diagram")
	}
}

// HandleJSONLD returns the schema.org document.
func (h *Handlers) HandleJSONLD(w http.ResponseWriter, _ *http.Request) {
	doc, err := h.dossier.JSONLD()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	w.Header().Set("Content-Type", jsonld.MediaType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.logger.Error().Err(err).Msg("failed to write jsonld document")
	}
}

// HandleExport streams the state envelope as a download.
func (h *Handlers) HandleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="orbite.json"`)
	if err := h.dossier.Export(w); err != nil {
		h.logger.Error().Err(err).Msg("failed to export dossier state")
	}
}

// HandleImport replaces the dossier state with the posted envelope. A
// malformed envelope leaves the current state untouched.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := h.dossier.Import(r.Body); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"entity":   h.dossier.Entity(),
		"revision": h.dossier.Revision(),
	})
}
