package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/diceduel/diceduel/internal/api/request"
	"github.com/diceduel/diceduel/internal/api/response"
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/services/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		WriteError(w, NewInvalidRequestError(
			fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength)))
		return
	}

	player, token, err := h.authService.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromPlayer(player, token))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("name and password are required"))
		return
	}

	player, token, err := h.authService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromPlayer(player, token))
}

// Verify handles POST /api/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("playerId is required"))
		return
	}

	player, err := h.authService.Verify(r.Context(), model.PlayerID(req.PlayerID), req.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.VerifyResponse{
		Valid:  true,
		Player: player.Summary(),
	})
}
