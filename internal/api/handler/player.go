package handler

import (
	"net/http"

	"github.com/diceduel/diceduel/internal/api/response"
	"github.com/diceduel/diceduel/internal/services/stats"
)

// PlayerHandler handles player listing endpoints
type PlayerHandler struct {
	statsService *stats.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(statsService *stats.Service) *PlayerHandler {
	return &PlayerHandler{
		statsService: statsService,
	}
}

// List handles GET /api/players
// Returns all players ranked by total points, credentials omitted
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.statsService.Leaderboard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entries)
}
