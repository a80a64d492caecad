package handler

import (
	"net/http"

	"github.com/diceduel/diceduel/internal/broadcast"
)

// WSHandler upgrades connections and subscribes them to the event hub
type WSHandler struct {
	hub *broadcast.Hub
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(hub *broadcast.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
	}
}

// Serve handles GET /ws
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	broadcast.ServeWS(h.hub, w, r)
}
