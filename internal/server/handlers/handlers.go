// Package handlers implements the dossier HTTP API. Every endpoint
// answers with the {data, error} envelope from the response package;
// state mutations go through the shared Dossier, which notifies the
// WebSocket hub on its own.
package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	orbite "github.com/entityscope/orbite"
	ws "github.com/entityscope/orbite/internal/server/websocket"
	"github.com/entityscope/orbite/internal/server/response"
)

// Handlers holds the dependencies shared by all endpoints.
type Handlers struct {
	dossier   *orbite.Dossier
	hub       *ws.Hub
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a handlers instance around the shared dossier.
func New(dossier *orbite.Dossier, hub *ws.Hub, upgrader websocket.Upgrader, logger *zerolog.Logger, startTime time.Time) *Handlers {
	return &Handlers{
		dossier:   dossier,
		hub:       hub,
		upgrader:  upgrader,
		logger:    logger,
		startTime: startTime,
	}
}

// HandleHealth reports liveness, uptime, and the current revision.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":     "ok",
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
		"revision":   h.dossier.Revision(),
		"ws_clients": h.hub.ClientCount(),
	})
}

// HandleIndex serves the embedded live-diagram page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(indexPage)); err != nil {
		h.logger.Error().Err(err).Msg("failed to write index page")
	}
}
