package memory

import (
	"context"
	"sync"

	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/storage"
)

// Storage is an in-memory implementation of the store interface,
// used in tests and as a throwaway backend
type Storage struct {
	mu      sync.RWMutex
	players map[model.PlayerID]model.Player
	games   []model.GameRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) ReadPlayers(ctx context.Context) (map[model.PlayerID]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make(map[model.PlayerID]model.Player, len(s.players))
	for id, player := range s.players {
		players[id] = player
	}
	return players, nil
}

func (s *Storage) WritePlayers(ctx context.Context, players map[model.PlayerID]model.Player) error {
	copied := make(map[model.PlayerID]model.Player, len(players))
	for id, player := range players {
		copied[id] = player
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = copied
	return nil
}

func (s *Storage) ReadGames(ctx context.Context) ([]model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]model.GameRecord, len(s.games))
	copy(games, s.games)
	return games, nil
}

func (s *Storage) WriteGames(ctx context.Context, games []model.GameRecord) error {
	copied := make([]model.GameRecord, len(games))
	copy(copied, games)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = copied
	return nil
}
