package dice

import (
	"github.com/diceduel/diceduel/internal/dependencies/random"
	"github.com/diceduel/diceduel/internal/model"
)

const (
	// RollsPerGame is the number of rolls each side makes in a game
	RollsPerGame = 5

	// DieSides is the number of faces on the die
	DieSides = 6
)

// Service produces dice outcomes and computes game results.
// It holds no game state; randomness is injected so tests can queue draws.
type Service struct {
	random random.Random
}

// New creates a new dice service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// RollDie returns a single uniformly distributed roll in [1,6]
func (s *Service) RollDie() int {
	return s.random.Intn(DieSides) + 1
}

// ComputerPlay draws the computer's five rolls. The draws use the same
// distribution as player rolls and happen at call time, so nothing about
// the player's rolls can bias them.
func (s *Service) ComputerPlay() []int {
	rolls := make([]int, RollsPerGame)
	for i := range rolls {
		rolls[i] = s.RollDie()
	}
	return rolls
}

// Score sums a roll sequence
func Score(rolls []int) int {
	total := 0
	for _, roll := range rolls {
		total += roll
	}
	return total
}

// DecideWinner returns the winner for the given totals.
// Ties go to the computer: the player must strictly exceed the computer's
// total.
func DecideWinner(playerTotal, computerTotal int) model.Winner {
	if playerTotal > computerTotal {
		return model.WinnerPlayer
	}
	return model.WinnerComputer
}

// ValidateRolls checks that rolls is a complete game: exactly five values,
// each in [1,6]
func ValidateRolls(rolls []int) error {
	if len(rolls) != RollsPerGame {
		return model.ErrInvalidRolls
	}
	for _, roll := range rolls {
		if roll < 1 || roll > DieSides {
			return model.ErrInvalidRolls
		}
	}
	return nil
}
