package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// VerifyRequest is the request body for verifying a stored credential
type VerifyRequest struct {
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	PlayerID string `json:"playerId"`
}

// RollRequest is the request body for a single die roll
type RollRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

// FinishGameRequest is the request body for finishing a game
type FinishGameRequest struct {
	GameID        string `json:"gameId"`
	PlayerID      string `json:"playerId"`
	PlayerRolls   []int  `json:"playerRolls"`
	ComputerRolls []int  `json:"computerRolls"`
}
