package server

import (
	"net/http"

	"github.com/entityscope/orbite/internal/server/handlers"
	"github.com/entityscope/orbite/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.dossier, s.hub, s.upgrader, s.logger, s.startTime)
	s.registerRoutes(mux, h)

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /healthz", h.HandleHealth)

	mux.HandleFunc("GET "+prefix+"/entity", h.HandleGetEntity)
	mux.HandleFunc("PATCH "+prefix+"/entity", h.HandlePatchEntity)
	mux.HandleFunc("GET "+prefix+"/score", h.HandleScore)
	mux.HandleFunc("GET "+prefix+"/search", h.HandleSearch)
	mux.HandleFunc("POST "+prefix+"/merge/{source}", h.HandleMerge)
	mux.HandleFunc("POST "+prefix+"/enrich", h.HandleEnrich)

	mux.HandleFunc("GET "+prefix+"/relations", h.HandleListRelations)
	mux.HandleFunc("POST "+prefix+"/relations", h.HandleAddRelation)
	mux.HandleFunc("PATCH "+prefix+"/relations/{id}", h.HandlePatchRelation)
	mux.HandleFunc("DELETE "+prefix+"/relations/{id}", h.HandleDeleteRelation)

	mux.HandleFunc("GET "+prefix+"/social", h.HandleListSocial)
	mux.HandleFunc("PUT "+prefix+"/social/{network}", h.HandlePutSocial)

	mux.HandleFunc("GET "+prefix+"/diagram.svg", h.HandleDiagram)
	mux.HandleFunc("GET "+prefix+"/jsonld", h.HandleJSONLD)

	mux.HandleFunc("GET "+prefix+"/export", h.HandleExport)
	mux.HandleFunc("POST "+prefix+"/import", h.HandleImport)
	mux.HandleFunc("POST "+prefix+"/reset", h.HandleReset)

	mux.HandleFunc("GET "+prefix+"/ws", h.HandleWebSocket)
}
