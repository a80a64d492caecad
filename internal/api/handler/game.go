package handler

import (
	"encoding/json"
	"net/http"

	"github.com/diceduel/diceduel/internal/api/request"
	"github.com/diceduel/diceduel/internal/api/response"
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/services/game"
	"github.com/diceduel/diceduel/internal/services/stats"
)

// recentGamesLimit caps GET /api/games/recent
const recentGamesLimit = 10

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	coordinator  *game.Coordinator
	statsService *stats.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(coordinator *game.Coordinator, statsService *stats.Service) *GameHandler {
	return &GameHandler{
		coordinator:  coordinator,
		statsService: statsService,
	}
}

// Start handles POST /api/game/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("playerId is required"))
		return
	}

	session, err := h.coordinator.StartSession(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StartGameResponse{
		GameID:  string(session.ID),
		Message: "Game started",
	})
}

// Roll handles POST /api/game/roll
func (h *GameHandler) Roll(w http.ResponseWriter, r *http.Request) {
	var req request.RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("playerId is required"))
		return
	}

	roll, err := h.coordinator.RecordRoll(r.Context(), model.GameID(req.GameID), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RollResponse{Roll: roll})
}

// Finish handles POST /api/game/finish
func (h *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	var req request.FinishGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("playerId is required"))
		return
	}
	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("gameId is required"))
		return
	}

	// A client that never drew the computer's rolls gets them drawn here,
	// keeping the finish usable for minimal clients
	computerRolls := req.ComputerRolls
	if len(computerRolls) == 0 {
		computerRolls = h.coordinator.ComputerPlay()
	}

	record, result, err := h.coordinator.FinishSession(r.Context(),
		model.GameID(req.GameID), model.PlayerID(req.PlayerID), req.PlayerRolls, computerRolls)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FinishGameResponse{
		Game:   record,
		Result: result,
	})
}

// Recent handles GET /api/games/recent
// Returns the latest completed games, newest first
func (h *GameHandler) Recent(w http.ResponseWriter, r *http.Request) {
	games, err := h.statsService.RecentGames(r.Context(), recentGamesLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, games)
}
