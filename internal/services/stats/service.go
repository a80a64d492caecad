package stats

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/storage"
)

// Entry is one leaderboard row
type Entry struct {
	ID          model.PlayerID `json:"id"`
	Name        string         `json:"name"`
	TotalGames  int            `json:"totalGames"`
	Wins        int            `json:"wins"`
	TotalPoints int            `json:"totalPoints"`
	BestScore   int            `json:"bestScore"`
	WinRate     int            `json:"winRate"`
}

// Service derives read-only views over the persistent stores
type Service struct {
	store  storage.Store
	logger *slog.Logger
}

// New creates a new stats service
func New(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With(slog.String("component", "stats")),
	}
}

// Leaderboard returns all players ranked by total points, descending.
// WinRate is a whole percentage, rounded, and 0 for players with no games.
func (s *Service) Leaderboard(ctx context.Context) ([]Entry, error) {
	players, err := s.store.ReadPlayers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(players))
	for _, player := range players {
		entries = append(entries, Entry{
			ID:          player.ID,
			Name:        player.Name,
			TotalGames:  player.TotalGames,
			Wins:        player.Wins,
			TotalPoints: player.TotalPoints,
			BestScore:   player.BestScore,
			WinRate:     winRate(player.Wins, player.TotalGames),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries, nil
}

// RecentGames returns the most recently completed games, newest first,
// capped at limit
func (s *Service) RecentGames(ctx context.Context, limit int) ([]model.GameRecord, error) {
	games, err := s.store.ReadGames(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CompletedAt.After(games[j].CompletedAt)
	})

	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func winRate(wins, totalGames int) int {
	if totalGames == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(totalGames) * 100))
}
