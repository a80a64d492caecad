package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/testutil"
)

func newTestStore(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), testutil.NopLogger())
	require.NoError(t, err)
	return s
}

func TestNewSeedsEmptyDocuments(t *testing.T) {
	dir := t.TempDir()
	_, err := New(dir, testutil.NopLogger())
	require.NoError(t, err)

	players, err := os.ReadFile(filepath.Join(dir, "players.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(players))

	games, err := os.ReadFile(filepath.Join(dir, "games.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(games))
}

func TestPlayersRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	players := map[model.PlayerID]model.Player{
		"p1": {
			ID:          "p1",
			Name:        "Alice",
			TotalGames:  3,
			Wins:        2,
			TotalPoints: 61,
			BestScore:   28,
			CreatedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, s.WritePlayers(ctx, players))

	got, err := s.ReadPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, players, got)
}

func TestGamesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	games := []model.GameRecord{
		{
			ID:            "g1",
			PlayerID:      "p1",
			PlayerName:    "Alice",
			PlayerRolls:   []int{6, 6, 6, 6, 6},
			PlayerTotal:   30,
			ComputerRolls: []int{1, 2, 3, 4, 5},
			ComputerTotal: 15,
			Winner:        model.WinnerPlayer,
			CompletedAt:   time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC),
		},
	}
	require.NoError(t, s.WriteGames(ctx, games))

	got, err := s.ReadGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, games, got)
}

func TestReadFailsSoftOnCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, testutil.NopLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "players.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.json"), []byte("xx"), 0o644))

	players, err := s.ReadPlayers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, players)

	games, err := s.ReadGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestReadFailsSoftOnMissingFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, testutil.NopLogger())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "players.json")))
	require.NoError(t, os.Remove(filepath.Join(dir, "games.json")))

	players, err := s.ReadPlayers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, players)

	games, err := s.ReadGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}
