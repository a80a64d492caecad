package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/storage"
)

const (
	playersFile = "players.json"
	gamesFile   = "games.json"
)

// Storage persists players and games as two JSON documents on disk:
// an object keyed by player id, and a flat array of completed games.
// Reads fail soft: a missing or corrupt file yields an empty collection,
// logged loudly rather than propagated, so a damaged file does not take
// the whole service down with it.
type Storage struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// New creates a JSON file store rooted at dir, creating the directory
// and empty seed documents if absent
func New(dir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Storage{
		dir:    dir,
		logger: logger.With(slog.String("component", "jsonfile-store")),
	}

	if err := s.seedIfMissing(playersFile, []byte("{}")); err != nil {
		return nil, err
	}
	if err := s.seedIfMissing(gamesFile, []byte("[]")); err != nil {
		return nil, err
	}

	return s, nil
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) seedIfMissing(name string, content []byte) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}

func (s *Storage) ReadPlayers(ctx context.Context) (map[model.PlayerID]model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make(map[model.PlayerID]model.Player)
	s.readDocument(playersFile, &players)
	if players == nil {
		players = make(map[model.PlayerID]model.Player)
	}
	return players, nil
}

func (s *Storage) WritePlayers(ctx context.Context, players map[model.PlayerID]model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDocument(playersFile, players)
}

func (s *Storage) ReadGames(ctx context.Context) ([]model.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var games []model.GameRecord
	s.readDocument(gamesFile, &games)
	return games, nil
}

func (s *Storage) WriteGames(ctx context.Context, games []model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if games == nil {
		games = []model.GameRecord{}
	}
	return s.writeDocument(gamesFile, games)
}

// readDocument unmarshals a document into out, leaving out untouched on
// any failure. The failure is logged, never returned.
func (s *Storage) readDocument(name string, out any) {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("unreadable document, treating as empty",
				slog.String("file", name),
				slog.String("error", err.Error()))
		}
		return
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error("corrupt document, treating as empty",
			slog.String("file", name),
			slog.String("error", err.Error()))
	}
}

// writeDocument replaces a document atomically via a temp file rename
func (s *Storage) writeDocument(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
