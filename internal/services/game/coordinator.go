package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/diceduel/diceduel/internal/dependencies/clock"
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/services/dice"
	"github.com/diceduel/diceduel/internal/session"
	"github.com/diceduel/diceduel/internal/storage"
)

// Broadcaster publishes state-change events to connected clients
type Broadcaster interface {
	BroadcastEvent(event any)
}

// Result summarizes a finished game for the finishing request
type Result struct {
	PlayerTotal   int          `json:"playerTotal"`
	ComputerTotal int          `json:"computerTotal"`
	Winner        model.Winner `json:"winner"`
}

// Coordinator orchestrates the game-session lifecycle: creation into the
// in-memory registry, individual rolls, and finalization into the
// durable stores with a broadcast to all subscribers.
//
// The client is the authority for roll history: RecordRoll returns a
// single draw without accumulating anything server-side, and
// FinishSession accepts the full roll lists back. The session's empty
// roll slice exists only for the GAME_STARTED snapshot.
type Coordinator struct {
	store       storage.Store
	locks       *storage.Locks
	registry    *session.Registry
	dice        *dice.Service
	clock       clock.Clock
	broadcaster Broadcaster
	logger      *slog.Logger
}

// NewCoordinator creates a new game coordinator
func NewCoordinator(
	store storage.Store,
	locks *storage.Locks,
	registry *session.Registry,
	diceService *dice.Service,
	clk clock.Clock,
	broadcaster Broadcaster,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		store:       store,
		locks:       locks,
		registry:    registry,
		dice:        diceService,
		clock:       clk,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "game")),
	}
}

// StartSession creates a new session for a player, inserts it into the
// registry and broadcasts the snapshot. The persistent store is only
// read, never written.
func (c *Coordinator) StartSession(ctx context.Context, playerID model.PlayerID) (model.Session, error) {
	player, err := c.lookupPlayer(ctx, playerID)
	if err != nil {
		return model.Session{}, err
	}

	newSession := model.Session{
		ID:            model.GameID(uuid.NewString()),
		PlayerID:      playerID,
		PlayerName:    player.Name,
		PlayerRolls:   []int{},
		ComputerRolls: []int{},
		CreatedAt:     c.clock.Now(),
	}
	c.registry.Put(newSession)

	c.logger.Info("game started",
		slog.String("game_id", string(newSession.ID)),
		slog.String("player_id", string(playerID)))

	c.broadcaster.BroadcastEvent(model.NewGameStartedEvent(newSession))

	return newSession, nil
}

// RecordRoll draws a single die value for the player. The session id is
// not validated here; the original flow never checked it before rolling
// and callers accumulate the sequence themselves.
func (c *Coordinator) RecordRoll(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (int, error) {
	if _, err := c.lookupPlayer(ctx, playerID); err != nil {
		return 0, err
	}
	return c.dice.RollDie(), nil
}

// ComputerPlay draws the computer's rolls for a finishing game
func (c *Coordinator) ComputerPlay() []int {
	return c.dice.ComputerPlay()
}

// FinishSession finalizes a game: it scores both sides, updates the
// player's cumulative statistics, appends the completed record to the
// durable log, removes the session from the registry and broadcasts the
// outcome.
//
// The registry removal happens before any mutation (remove-then-act), so
// a second finish for the same id fails with ErrGameAlreadyFinished
// instead of double-counting statistics.
func (c *Coordinator) FinishSession(ctx context.Context, gameID model.GameID, playerID model.PlayerID, playerRolls, computerRolls []int) (model.GameRecord, Result, error) {
	if err := dice.ValidateRolls(playerRolls); err != nil {
		return model.GameRecord{}, Result{}, err
	}
	if err := dice.ValidateRolls(computerRolls); err != nil {
		return model.GameRecord{}, Result{}, err
	}

	if _, err := c.lookupPlayer(ctx, playerID); err != nil {
		return model.GameRecord{}, Result{}, err
	}

	if _, ok := c.registry.Remove(gameID); !ok {
		return model.GameRecord{}, Result{}, model.ErrGameAlreadyFinished
	}

	playerTotal := dice.Score(playerRolls)
	computerTotal := dice.Score(computerRolls)
	winner := dice.DecideWinner(playerTotal, computerTotal)

	player, err := c.applyStats(ctx, playerID, playerTotal, winner)
	if err != nil {
		return model.GameRecord{}, Result{}, err
	}

	record := model.GameRecord{
		ID:            model.GameID(uuid.NewString()),
		PlayerID:      playerID,
		PlayerName:    player.Name,
		PlayerRolls:   playerRolls,
		PlayerTotal:   playerTotal,
		ComputerRolls: computerRolls,
		ComputerTotal: computerTotal,
		Winner:        winner,
		CompletedAt:   c.clock.Now(),
	}

	if err := c.appendGame(ctx, record); err != nil {
		return model.GameRecord{}, Result{}, err
	}

	c.logger.Info("game completed",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_total", playerTotal),
		slog.Int("computer_total", computerTotal),
		slog.String("winner", string(winner)))

	c.broadcaster.BroadcastEvent(model.NewGameCompletedEvent(record, player))

	result := Result{
		PlayerTotal:   playerTotal,
		ComputerTotal: computerTotal,
		Winner:        winner,
	}
	return record, result, nil
}

// lookupPlayer fetches a player record or ErrPlayerNotFound
func (c *Coordinator) lookupPlayer(ctx context.Context, playerID model.PlayerID) (model.Player, error) {
	players, err := c.store.ReadPlayers(ctx)
	if err != nil {
		return model.Player{}, err
	}
	player, ok := players[playerID]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return player, nil
}

// applyStats folds a finished game into the player's cumulative
// statistics under the players-document lock and returns the updated
// record
func (c *Coordinator) applyStats(ctx context.Context, playerID model.PlayerID, playerTotal int, winner model.Winner) (model.Player, error) {
	c.locks.Players.Lock()
	defer c.locks.Players.Unlock()

	players, err := c.store.ReadPlayers(ctx)
	if err != nil {
		return model.Player{}, err
	}

	player, ok := players[playerID]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}

	player.TotalGames++
	player.TotalPoints += playerTotal
	if playerTotal > player.BestScore {
		player.BestScore = playerTotal
	}
	if winner == model.WinnerPlayer {
		player.Wins++
	}

	players[playerID] = player
	if err := c.store.WritePlayers(ctx, players); err != nil {
		return model.Player{}, err
	}
	return player, nil
}

// appendGame appends a completed record to the durable log under the
// games-document lock
func (c *Coordinator) appendGame(ctx context.Context, record model.GameRecord) error {
	c.locks.Games.Lock()
	defer c.locks.Games.Unlock()

	games, err := c.store.ReadGames(ctx)
	if err != nil {
		return err
	}
	games = append(games, record)
	return c.store.WriteGames(ctx, games)
}
