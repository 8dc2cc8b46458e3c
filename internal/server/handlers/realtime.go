package handlers

import (
	"fmt"
	"net/http"
	"time"

	ws "github.com/entityscope/orbite/internal/server/websocket"
)

// HandleWebSocket upgrades the connection and registers the client for
// dossier.updated broadcasts.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	clientID := fmt.Sprintf("%s-%d", r.RemoteAddr, time.Now().UnixNano())
	client := ws.NewClient(clientID, h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
