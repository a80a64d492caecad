package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/storage"
)

// Storage is a Redis-backed implementation of the store interface.
// Players live in a hash keyed by player id and games in a list, so a
// whole-document write touches each record individually inside one
// pipeline. Corrupt entries are skipped and logged rather than failing
// the whole read; connection errors still propagate.
type Storage struct {
	client *redis.Client
	logger *slog.Logger
}

// New creates a new Redis storage instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, logger), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		logger: logger.With(slog.String("component", "redis-store")),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) ReadPlayers(ctx context.Context) (map[model.PlayerID]model.Player, error) {
	entries, err := s.client.HGetAll(ctx, playersKey()).Result()
	if err != nil {
		return nil, err
	}

	players := make(map[model.PlayerID]model.Player, len(entries))
	for id, data := range entries {
		var player model.Player
		if err := json.Unmarshal([]byte(data), &player); err != nil {
			s.logger.Error("corrupt player entry, skipping",
				slog.String("player_id", id),
				slog.String("error", err.Error()))
			continue
		}
		players[model.PlayerID(id)] = player
	}
	return players, nil
}

func (s *Storage) WritePlayers(ctx context.Context, players map[model.PlayerID]model.Player) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, playersKey())
	for id, player := range players {
		data, err := json.Marshal(player)
		if err != nil {
			return err
		}
		pipe.HSet(ctx, playersKey(), string(id), data)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ReadGames(ctx context.Context) ([]model.GameRecord, error) {
	entries, err := s.client.LRange(ctx, gamesKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	games := make([]model.GameRecord, 0, len(entries))
	for _, data := range entries {
		var record model.GameRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			s.logger.Error("corrupt game entry, skipping",
				slog.String("error", err.Error()))
			continue
		}
		games = append(games, record)
	}
	return games, nil
}

func (s *Storage) WriteGames(ctx context.Context, games []model.GameRecord) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, gamesKey())
	for _, record := range games {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, gamesKey(), data)
	}
	_, err := pipe.Exec(ctx)
	return err
}
