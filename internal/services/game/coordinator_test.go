package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/diceduel/diceduel/internal/dependencies/mocks"
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/services/dice"
	"github.com/diceduel/diceduel/internal/session"
	"github.com/diceduel/diceduel/internal/storage"
	"github.com/diceduel/diceduel/internal/storage/memory"
	"github.com/diceduel/diceduel/internal/testutil"
)

// recordingBroadcaster captures events instead of delivering them
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []any
}

func (b *recordingBroadcaster) BroadcastEvent(event any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBroadcaster) all() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]any(nil), b.events...)
}

type CoordinatorSuite struct {
	suite.Suite
	storage     *memory.Storage
	registry    *session.Registry
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	broadcaster *recordingBroadcaster
	coordinator *Coordinator
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = session.NewRegistry(s.clock, logger)
	s.broadcaster = &recordingBroadcaster{}
	s.coordinator = NewCoordinator(s.storage, &storage.Locks{}, s.registry,
		dice.New(s.random), s.clock, s.broadcaster, logger)
	s.ctx = context.Background()

	s.Require().NoError(s.storage.WritePlayers(s.ctx, map[model.PlayerID]model.Player{
		"player-1": {ID: "player-1", Name: "Alice", BestScore: 12},
		"player-2": {ID: "player-2", Name: "Bob"},
	}))
}

// StartSession tests

func (s *CoordinatorSuite) TestStartSessionSucceeds() {
	created, err := s.coordinator.StartSession(s.ctx, "player-1")
	s.Require().NoError(err)

	s.NotEmpty(created.ID)
	s.Equal(model.PlayerID("player-1"), created.PlayerID)
	s.Equal("Alice", created.PlayerName)
	s.Empty(created.PlayerRolls)
	s.Equal(s.clock.Now(), created.CreatedAt)

	stored, ok := s.registry.Get(created.ID)
	s.True(ok)
	s.Equal(created, stored)
}

func (s *CoordinatorSuite) TestStartSessionUnknownPlayer() {
	_, err := s.coordinator.StartSession(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Equal(0, s.registry.Len())
}

func (s *CoordinatorSuite) TestStartSessionBroadcastsSnapshot() {
	created, err := s.coordinator.StartSession(s.ctx, "player-1")
	s.Require().NoError(err)

	events := s.broadcaster.all()
	s.Require().Len(events, 1)
	event, ok := events[0].(model.GameStartedEvent)
	s.Require().True(ok)
	s.Equal(model.EventGameStarted, event.Type)
	s.Equal(created.ID, event.Game.ID)
}

func (s *CoordinatorSuite) TestConcurrentStartsGetDistinctSessions() {
	var wg sync.WaitGroup
	results := make([]model.Session, 2)
	for i, playerID := range []model.PlayerID{"player-1", "player-2"} {
		i, playerID := i, playerID
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.coordinator.StartSession(s.ctx, playerID)
			s.NoError(err)
			results[i] = created
		}()
	}
	wg.Wait()

	s.NotEqual(results[0].ID, results[1].ID)
	s.Equal(2, s.registry.Len())
}

// RecordRoll tests

func (s *CoordinatorSuite) TestRecordRollReturnsDraw() {
	s.random.QueueIntn(3)

	roll, err := s.coordinator.RecordRoll(s.ctx, "any-game-id", "player-1")
	s.Require().NoError(err)
	s.Equal(4, roll)
}

func (s *CoordinatorSuite) TestRecordRollUnknownPlayer() {
	_, err := s.coordinator.RecordRoll(s.ctx, "any-game-id", "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *CoordinatorSuite) TestRecordRollDoesNotRequireSession() {
	// The reference flow never validated the session before a roll
	roll, err := s.coordinator.RecordRoll(s.ctx, "no-such-session", "player-1")
	s.Require().NoError(err)
	s.GreaterOrEqual(roll, 1)
	s.LessOrEqual(roll, 6)
}

// FinishSession tests

func (s *CoordinatorSuite) startGame(playerID model.PlayerID) model.GameID {
	created, err := s.coordinator.StartSession(s.ctx, playerID)
	s.Require().NoError(err)
	return created.ID
}

func (s *CoordinatorSuite) TestFinishSessionPlayerWins() {
	gameID := s.startGame("player-1")

	record, result, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{6, 6, 6, 6, 6}, []int{1, 2, 3, 4, 5})
	s.Require().NoError(err)

	s.Equal(30, result.PlayerTotal)
	s.Equal(15, result.ComputerTotal)
	s.Equal(model.WinnerPlayer, result.Winner)
	s.Equal(model.WinnerPlayer, record.Winner)
	s.Equal("Alice", record.PlayerName)
	s.Equal(s.clock.Now(), record.CompletedAt)

	players, err := s.storage.ReadPlayers(s.ctx)
	s.Require().NoError(err)
	player := players["player-1"]
	s.Equal(1, player.TotalGames)
	s.Equal(1, player.Wins)
	s.Equal(30, player.TotalPoints)
	s.Equal(30, player.BestScore)

	_, ok := s.registry.Get(gameID)
	s.False(ok, "session should be removed at finalization")
}

func (s *CoordinatorSuite) TestFinishSessionTieGoesToComputer() {
	gameID := s.startGame("player-1")

	_, result, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{4, 4, 4, 2, 2}, []int{1, 2, 3, 4, 6})
	s.Require().NoError(err)

	s.Equal(16, result.PlayerTotal)
	s.Equal(16, result.ComputerTotal)
	s.Equal(model.WinnerComputer, result.Winner)

	players, _ := s.storage.ReadPlayers(s.ctx)
	s.Equal(0, players["player-1"].Wins)
}

func (s *CoordinatorSuite) TestFinishSessionKeepsHigherBestScore() {
	gameID := s.startGame("player-1")

	// Alice's best is 12; a 10-point game should not lower it
	_, _, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{2, 2, 2, 2, 2}, []int{1, 1, 1, 1, 1})
	s.Require().NoError(err)

	players, _ := s.storage.ReadPlayers(s.ctx)
	s.Equal(12, players["player-1"].BestScore)
	s.Equal(10, players["player-1"].TotalPoints)
}

func (s *CoordinatorSuite) TestFinishSessionAppendsRecord() {
	gameID := s.startGame("player-1")

	record, _, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{1, 2, 3, 4, 5}, []int{6, 6, 6, 6, 6})
	s.Require().NoError(err)

	games, err := s.storage.ReadGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(record, games[0])
}

func (s *CoordinatorSuite) TestFinishSessionBroadcastsCompletion() {
	gameID := s.startGame("player-1")

	record, _, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{6, 6, 6, 6, 6}, []int{1, 1, 1, 1, 1})
	s.Require().NoError(err)

	events := s.broadcaster.all()
	s.Require().Len(events, 2) // GAME_STARTED then GAME_COMPLETED
	event, ok := events[1].(model.GameCompletedEvent)
	s.Require().True(ok)
	s.Equal(model.EventGameCompleted, event.Type)
	s.Equal(record.ID, event.Game.ID)
	s.Equal(1, event.Player.Wins)
}

func (s *CoordinatorSuite) TestFinishSessionTwiceDoesNotDoubleCount() {
	gameID := s.startGame("player-1")

	rolls := []int{6, 6, 6, 6, 6}
	computer := []int{1, 1, 1, 1, 1}

	_, _, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1", rolls, computer)
	s.Require().NoError(err)

	_, _, err = s.coordinator.FinishSession(s.ctx, gameID, "player-1", rolls, computer)
	s.ErrorIs(err, model.ErrGameAlreadyFinished)

	players, _ := s.storage.ReadPlayers(s.ctx)
	s.Equal(1, players["player-1"].TotalGames)
	s.Equal(1, players["player-1"].Wins)
	s.Equal(30, players["player-1"].TotalPoints)

	games, _ := s.storage.ReadGames(s.ctx)
	s.Len(games, 1)
}

func (s *CoordinatorSuite) TestFinishSessionUnknownPlayer() {
	gameID := s.startGame("player-1")

	_, _, err := s.coordinator.FinishSession(s.ctx, gameID, "nobody",
		[]int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// The session survives a failed finish
	_, ok := s.registry.Get(gameID)
	s.True(ok)
}

func (s *CoordinatorSuite) TestFinishSessionRejectsInvalidRolls() {
	gameID := s.startGame("player-1")

	_, _, err := s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{1, 2, 3, 4}, []int{1, 2, 3, 4, 5})
	s.ErrorIs(err, model.ErrInvalidRolls)

	_, _, err = s.coordinator.FinishSession(s.ctx, gameID, "player-1",
		[]int{1, 2, 3, 4, 5}, []int{0, 2, 3, 4, 5})
	s.ErrorIs(err, model.ErrInvalidRolls)

	// Rejected finishes leave the session active and stats untouched
	_, ok := s.registry.Get(gameID)
	s.True(ok)
	players, _ := s.storage.ReadPlayers(s.ctx)
	s.Equal(0, players["player-1"].TotalGames)
}

func (s *CoordinatorSuite) TestComputerPlayDrawsAtFinishTime() {
	s.random.QueueIntn(0, 1, 2, 3, 4)
	rolls := s.coordinator.ComputerPlay()
	s.Equal([]int{1, 2, 3, 4, 5}, rolls)
}
