package broadcast

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diceduel/diceduel/internal/model"
	"github.com/diceduel/diceduel/internal/testutil"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

// newFakeClient builds a client that is only a send buffer, which is all
// the hub ever touches
func newFakeClient(buffer int) *Client {
	return &Client{
		send:        make(chan []byte, buffer),
		remoteAddr:  "test",
		connectedAt: time.Now(),
	}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := newRunningHub(t)

	first := newFakeClient(sendBufferSize)
	second := newFakeClient(sendBufferSize)
	hub.Register(first)
	hub.Register(second)

	hub.Broadcast([]byte(`{"type":"TEST"}`))

	assert.Equal(t, `{"type":"TEST"}`, string(receive(t, first)))
	assert.Equal(t, `{"type":"TEST"}`, string(receive(t, second)))
}

func TestBroadcastEventSerializesEnvelope(t *testing.T) {
	hub := newRunningHub(t)

	client := newFakeClient(sendBufferSize)
	hub.Register(client)

	hub.BroadcastEvent(model.NewGameStartedEvent(model.Session{
		ID:          "game-1",
		PlayerID:    "player-1",
		PlayerName:  "Alice",
		PlayerRolls: []int{},
	}))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(receive(t, client), &envelope))
	assert.Equal(t, "GAME_STARTED", envelope["type"])

	game, ok := envelope["game"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "game-1", game["id"])
	assert.Equal(t, "Alice", game["playerName"])
}

func TestSlowClientDoesNotBlockBroadcast(t *testing.T) {
	hub := newRunningHub(t)

	slow := newFakeClient(1)
	healthy := newFakeClient(sendBufferSize)
	hub.Register(slow)
	hub.Register(healthy)

	// Fill the slow client's buffer; further messages to it are dropped
	for i := 0; i < 5; i++ {
		hub.Broadcast([]byte("message"))
	}

	// The healthy client still receives everything
	for i := 0; i < 5; i++ {
		receive(t, healthy)
	}
	assert.Len(t, slow.send, 1)
}

func TestRegisterAfterCloseDoesNotBlock(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	hub.Close()

	done := make(chan struct{})
	go func() {
		hub.Register(newFakeClient(sendBufferSize))
		hub.Unregister(newFakeClient(sendBufferSize))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after hub shutdown")
	}

	// The run loop clears any client it accepted before noticing shutdown
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestUnregisterRemovesClient(t *testing.T) {
	hub := newRunningHub(t)

	client := newFakeClient(sendBufferSize)
	hub.Register(client)
	hub.Unregister(client)

	// Unregister closes the send channel
	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
