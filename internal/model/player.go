package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a registered participant with cumulative statistics.
// The whole record (credential hash included) is what the store persists;
// use Summary for anything that leaves the server.
type Player struct {
	ID           PlayerID  `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	TotalGames   int       `json:"totalGames"`
	Wins         int       `json:"wins"`
	TotalPoints  int       `json:"totalPoints"`
	BestScore    int       `json:"bestScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PlayerSummary is the public view of a player, safe to broadcast
type PlayerSummary struct {
	ID          PlayerID  `json:"id"`
	Name        string    `json:"name"`
	TotalGames  int       `json:"totalGames"`
	Wins        int       `json:"wins"`
	TotalPoints int       `json:"totalPoints"`
	BestScore   int       `json:"bestScore"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary strips the credential hash from a player record
func (p Player) Summary() PlayerSummary {
	return PlayerSummary{
		ID:          p.ID,
		Name:        p.Name,
		TotalGames:  p.TotalGames,
		Wins:        p.Wins,
		TotalPoints: p.TotalPoints,
		BestScore:   p.BestScore,
		CreatedAt:   p.CreatedAt,
	}
}
