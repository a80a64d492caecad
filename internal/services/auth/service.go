package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/diceduel/diceduel/internal/dependencies/clock"
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/storage"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// Broadcaster publishes state-change events to connected clients
type Broadcaster interface {
	BroadcastEvent(event any)
}

// Config holds configuration for the auth service
type Config struct {
	// SigningKey signs issued tokens; must be non-empty in production
	SigningKey string
	// TokenTTL is how long issued tokens stay valid
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// Service handles registration, login and token verification.
//
// Passwords are stored as bcrypt hashes and tokens are signed and
// expiring. The system this replaces compared passwords in plain text
// and issued random tokens it never checked; that behavior is a defect,
// not a contract, and is deliberately not reproduced.
type Service struct {
	store       storage.Store
	locks       *storage.Locks
	clock       clock.Clock
	broadcaster Broadcaster
	logger      *slog.Logger

	signingKey []byte
	tokenTTL   time.Duration
}

// New creates a new auth service
func New(store storage.Store, locks *storage.Locks, clk clock.Clock, broadcaster Broadcaster, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		store:       store,
		locks:       locks,
		clock:       clk,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "auth")),
		signingKey:  []byte(cfg.SigningKey),
		tokenTTL:    cfg.TokenTTL,
	}
}

// Register creates a player with zeroed statistics and returns it with a
// fresh token. Names are trimmed and compared case-sensitively; a name
// that trims to nothing fails with ErrNameRequired, and a taken name
// fails with ErrNameTaken regardless of password.
func (s *Service) Register(ctx context.Context, name, password string) (model.Player, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, "", model.ErrNameRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Player{}, "", fmt.Errorf("hash password: %w", err)
	}

	s.locks.Players.Lock()
	defer s.locks.Players.Unlock()

	players, err := s.store.ReadPlayers(ctx)
	if err != nil {
		return model.Player{}, "", err
	}

	for _, existing := range players {
		if existing.Name == name {
			return model.Player{}, "", model.ErrNameTaken
		}
	}

	player := model.Player{
		ID:           model.PlayerID(uuid.NewString()),
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	players[player.ID] = player

	if err := s.store.WritePlayers(ctx, players); err != nil {
		return model.Player{}, "", err
	}

	token, err := s.issueToken(player.ID)
	if err != nil {
		return model.Player{}, "", err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name))

	s.broadcaster.BroadcastEvent(model.NewPlayerRegisteredEvent(player))

	return player, token, nil
}

// Login authenticates a player by name and password and issues a token
func (s *Service) Login(ctx context.Context, name, password string) (model.Player, string, error) {
	players, err := s.store.ReadPlayers(ctx)
	if err != nil {
		return model.Player{}, "", err
	}

	var player model.Player
	found := false
	for _, candidate := range players {
		if candidate.Name == name {
			player = candidate
			found = true
			break
		}
	}

	if !found {
		return model.Player{}, "", model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return model.Player{}, "", model.ErrInvalidCredentials
	}

	token, err := s.issueToken(player.ID)
	if err != nil {
		return model.Player{}, "", err
	}

	return player, token, nil
}

// Verify checks that a token is valid and was issued to playerID, and
// returns the current player record
func (s *Service) Verify(ctx context.Context, playerID model.PlayerID, token string) (model.Player, error) {
	subject, err := s.parseToken(token)
	if err != nil {
		return model.Player{}, err
	}
	if subject != playerID {
		return model.Player{}, model.ErrInvalidToken
	}

	players, err := s.store.ReadPlayers(ctx)
	if err != nil {
		return model.Player{}, err
	}

	player, ok := players[playerID]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return player, nil
}
