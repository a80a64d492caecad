package response

import (
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/services/game"
)

// AuthResponse is the response for register and login
type AuthResponse struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Token      string `json:"token"`
}

// AuthResponseFromPlayer builds an AuthResponse for a freshly issued token
func AuthResponseFromPlayer(p model.Player, token string) AuthResponse {
	return AuthResponse{
		PlayerID:   string(p.ID),
		PlayerName: p.Name,
		Token:      token,
	}
}

// VerifyResponse is the response for a successful credential check
type VerifyResponse struct {
	Valid  bool                `json:"valid"`
	Player model.PlayerSummary `json:"player"`
}

// StartGameResponse is the response for starting a game
type StartGameResponse struct {
	GameID  string `json:"gameId"`
	Message string `json:"message"`
}

// RollResponse is the response for a single die roll
type RollResponse struct {
	Roll int `json:"roll"`
}

// FinishGameResponse is the response for finishing a game
type FinishGameResponse struct {
	Game   model.GameRecord `json:"game"`
	Result game.Result      `json:"result"`
}
