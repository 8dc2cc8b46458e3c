// Package server exposes one shared dossier over a localhost HTTP API
// with a WebSocket channel for live updates. Every state mutation
// broadcasts the new revision so connected pages re-fetch the diagram.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	orbite "github.com/entityscope/orbite"
	ws "github.com/entityscope/orbite/internal/server/websocket"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	dossier   *orbite.Dossier
	hub       *ws.Hub
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New wires a server around the shared dossier. Dossier updates are
// forwarded to the WebSocket hub as dossier.updated messages.
func New(dossier *orbite.Dossier, logger *zerolog.Logger, cfg Config) *Server {
	s := &Server{
		dossier: dossier,
		hub:     ws.NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Localhost single-operator tool; the page is served from
			// the same origin.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	dossier.OnUpdated(func(revision uint64) {
		s.hub.Broadcast(ws.Message{
			Type:      "dossier.updated",
			Timestamp: time.Now().UTC(),
			Data:      map[string]any{"revision": revision},
		})
	})

	return s
}

// Start runs the WebSocket hub until ctx is canceled.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns a configured http.Server ready to listen.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// Uptime returns the time since the server was created.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}
