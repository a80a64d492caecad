package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/diceduel/diceduel/internal/dependencies/mocks"
	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/testutil"
)

func newTestRegistry(clk *mocks.MockClock) *Registry {
	return NewRegistry(clk, testutil.NopLogger())
}

func TestPutAndGet(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newTestRegistry(clk)

	session := model.Session{ID: "game-1", PlayerID: "player-1", CreatedAt: clk.Now()}
	r.Put(session)

	got, ok := r.Get("game-1")
	assert.True(t, ok)
	assert.Equal(t, session, got)
	assert.Equal(t, 1, r.Len())
}

func TestGetMissing(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newTestRegistry(clk)

	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestRemoveReportsPresence(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newTestRegistry(clk)

	r.Put(model.Session{ID: "game-1", PlayerID: "player-1", CreatedAt: clk.Now()})

	session, ok := r.Remove("game-1")
	assert.True(t, ok)
	assert.Equal(t, model.GameID("game-1"), session.ID)

	// Second removal of the same id is a no-op
	_, ok = r.Remove("game-1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestSnapshotCopiesAllSessions(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newTestRegistry(clk)

	r.Put(model.Session{ID: "game-1", PlayerID: "player-1", CreatedAt: clk.Now()})
	r.Put(model.Session{ID: "game-2", PlayerID: "player-2", CreatedAt: clk.Now()})

	snapshot := r.Snapshot()
	assert.Len(t, snapshot, 2)

	ids := []model.GameID{snapshot[0].ID, snapshot[1].ID}
	assert.ElementsMatch(t, []model.GameID{"game-1", "game-2"}, ids)

	// Mutating the snapshot does not touch the registry
	snapshot[0] = model.Session{ID: "mangled"}
	assert.Equal(t, 2, r.Len())
	_, ok := r.Get("mangled")
	assert.False(t, ok)
}

func TestSweepEvictsOnlyExpired(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newTestRegistry(clk)

	r.Put(model.Session{ID: "old", CreatedAt: clk.Now()})
	clk.Advance(2 * time.Hour)
	r.Put(model.Session{ID: "fresh", CreatedAt: clk.Now()})

	removed := r.Sweep(time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := r.Get("old")
	assert.False(t, ok)
	_, ok = r.Get("fresh")
	assert.True(t, ok)
}

func TestSweepEmptyRegistry(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newTestRegistry(clk)

	assert.Equal(t, 0, r.Sweep(time.Hour))
}
