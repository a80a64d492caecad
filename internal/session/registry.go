package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/diceduel/diceduel/internal/dependencies/clock"
	"github.com/diceduel/diceduel/internal/model"
)

// Registry is the in-memory map of active game sessions.
// Sessions live here from creation until finalization and are lost on
// process restart; nothing in the registry is ever persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[model.GameID]model.Session
	clock    clock.Clock
	logger   *slog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(clk clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[model.GameID]model.Session),
		clock:    clk,
		logger:   logger.With(slog.String("component", "session-registry")),
	}
}

// Put inserts or replaces a session
func (r *Registry) Put(session model.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

// Get returns the session for an id, if present
func (r *Registry) Get(id model.GameID) (model.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Remove deletes a session and reports whether it was present.
// Concurrent finalizations racing on the same id see exactly one true,
// which is what makes remove-then-act safe.
func (r *Registry) Remove(id model.GameID) (model.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	return session, ok
}

// Snapshot returns a copy of every active session
func (r *Registry) Snapshot() []model.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]model.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep evicts sessions older than ttl and returns how many were removed.
// Abandoned games (player disconnects mid-roll) otherwise sit in the map
// until process restart.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.clock.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("swept abandoned sessions",
			slog.Int("removed", removed),
			slog.Int("remaining", len(r.sessions)))
	}
	return removed
}

// StartSweep runs Sweep every interval until ctx is cancelled
func (r *Registry) StartSweep(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Sweep(ttl)
			case <-ctx.Done():
				return
			}
		}
	}()
}
