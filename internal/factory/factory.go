package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/diceduel/diceduel/internal/broadcast"
	"github.com/diceduel/diceduel/internal/dependencies/clock"
	"github.com/diceduel/diceduel/internal/dependencies/random"
	"github.com/diceduel/diceduel/internal/services/auth"
	"github.com/diceduel/diceduel/internal/services/dice"
	"github.com/diceduel/diceduel/internal/services/game"
	"github.com/diceduel/diceduel/internal/services/stats"
	"github.com/diceduel/diceduel/internal/session"
	"github.com/diceduel/diceduel/internal/storage"
	"github.com/diceduel/diceduel/internal/storage/jsonfile"
	"github.com/diceduel/diceduel/internal/storage/memory"
	redisstorage "github.com/diceduel/diceduel/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeJSONFile = "jsonfile"
	StorageTypeRedis    = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store
	Locks   *storage.Locks

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry        *session.Registry
	Hub             *broadcast.Hub
	DiceService     *dice.Service
	AuthService     *auth.Service
	GameCoordinator *game.Coordinator
	StatsService    *stats.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("jsonfile", "memory" or "redis")
	// If empty, defaults to "jsonfile"
	StorageType string
	// DataDir is where the jsonfile backend keeps its documents
	// (required if StorageType is "jsonfile")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired.
//
// The hub's run loop is started here; callers stop it with App.Close.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeJSONFile
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeJSONFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is jsonfile")
		}
		fileStore, err := jsonfile.New(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, logger)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'jsonfile', 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenTTL == 0 {
		authCfg.TokenTTL = auth.DefaultConfig().TokenTTL
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// The locks serialize read-modify-write cycles across services that
	// share a document
	locks := &storage.Locks{}

	hub := broadcast.NewHub(logger)
	go hub.Run()

	registry := session.NewRegistry(clk, logger)
	diceService := dice.New(rnd)
	authService := auth.New(store, locks, clk, hub, authCfg, logger)
	coordinator := game.NewCoordinator(store, locks, registry, diceService, clk, hub, logger)
	statsService := stats.New(store, logger)

	return &App{
		Storage:         store,
		Locks:           locks,
		Clock:           clk,
		Random:          rnd,
		Registry:        registry,
		Hub:             hub,
		DiceService:     diceService,
		AuthService:     authService,
		GameCoordinator: coordinator,
		StatsService:    statsService,
	}
}

// Close stops the hub and disconnects every subscriber
func (a *App) Close() {
	a.Hub.Close()
}
