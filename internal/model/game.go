package model

import "time"

// GameID uniquely identifies a game, in progress or completed
type GameID string

// Winner designates which side won a game
type Winner string

const (
	WinnerPlayer   Winner = "player"
	WinnerComputer Winner = "computer"
)

// Session is an in-progress game tracked only in process memory.
// PlayerRolls is part of the broadcast snapshot but the server never
// appends to it: the client resubmits the full roll list at finish time.
type Session struct {
	ID            GameID    `json:"id"`
	PlayerID      PlayerID  `json:"playerId"`
	PlayerName    string    `json:"playerName"`
	PlayerRolls   []int     `json:"playerRolls"`
	ComputerRolls []int     `json:"computerRolls"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GameRecord is the immutable, durably stored summary of a finished game
type GameRecord struct {
	ID            GameID    `json:"id"`
	PlayerID      PlayerID  `json:"playerId"`
	PlayerName    string    `json:"playerName"`
	PlayerRolls   []int     `json:"playerRolls"`
	PlayerTotal   int       `json:"playerTotal"`
	ComputerRolls []int     `json:"computerRolls"`
	ComputerTotal int       `json:"computerTotal"`
	Winner        Winner    `json:"winner"`
	CompletedAt   time.Time `json:"completedAt"`
}
