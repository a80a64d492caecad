package storage

import (
	"context"
	"sync"

	"github.com/diceduel/diceduel/internal/model"
)

// Store defines the interface for durable player and game persistence.
// Both collections use whole-document semantics: a write replaces the
// entire stored collection, never a single entry.
type Store interface {
	// ReadPlayers returns all player records keyed by id
	ReadPlayers(ctx context.Context) (map[model.PlayerID]model.Player, error)

	// WritePlayers replaces the entire player document
	WritePlayers(ctx context.Context, players map[model.PlayerID]model.Player) error

	// ReadGames returns the completed game log in append order
	ReadGames(ctx context.Context) ([]model.GameRecord, error)

	// WriteGames replaces the entire game log
	WriteGames(ctx context.Context, games []model.GameRecord) error
}

// Locks serializes read-modify-write cycles on the two documents.
// Whole-document replacement means two writers racing through
// read -> mutate -> write silently drop each other's updates; every
// caller that mutates a document must hold the matching lock for the
// full cycle. A single shared instance is created by the factory.
type Locks struct {
	Players sync.Mutex
	Games   sync.Mutex
}
