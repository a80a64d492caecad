package redis

// Key prefix for all dice game data
const keyPrefix = "diceduel"

// playersKey returns the Redis key for the players hash,
// one field per player id
func playersKey() string {
	return keyPrefix + ":players"
}

// gamesKey returns the Redis key for the completed-game list,
// in append order
func gamesKey() string {
	return keyPrefix + ":games"
}
