package model

// EventType identifies the type of a broadcast event.
// The wire names match what connected clients switch on.
type EventType string

const (
	EventPlayerRegistered EventType = "PLAYER_REGISTERED"
	EventGameStarted      EventType = "GAME_STARTED"
	EventGameCompleted    EventType = "GAME_COMPLETED"
)

// PlayerRegisteredEvent announces a new player to all subscribers
type PlayerRegisteredEvent struct {
	Type   EventType     `json:"type"`
	Player PlayerSummary `json:"player"`
}

// NewPlayerRegisteredEvent builds the envelope for a registration
func NewPlayerRegisteredEvent(player Player) PlayerRegisteredEvent {
	return PlayerRegisteredEvent{
		Type:   EventPlayerRegistered,
		Player: player.Summary(),
	}
}

// GameStartedEvent carries the snapshot of a freshly created session
type GameStartedEvent struct {
	Type EventType `json:"type"`
	Game Session   `json:"game"`
}

// NewGameStartedEvent builds the envelope for a session creation
func NewGameStartedEvent(session Session) GameStartedEvent {
	return GameStartedEvent{
		Type: EventGameStarted,
		Game: session,
	}
}

// GameCompletedEvent carries the completed record and the updated player
type GameCompletedEvent struct {
	Type   EventType     `json:"type"`
	Game   GameRecord    `json:"game"`
	Player PlayerSummary `json:"player"`
}

// NewGameCompletedEvent builds the envelope for a finalization
func NewGameCompletedEvent(record GameRecord, player Player) GameCompletedEvent {
	return GameCompletedEvent{
		Type:   EventGameCompleted,
		Game:   record,
		Player: player.Summary(),
	}
}
