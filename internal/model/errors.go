package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNameTaken      = errors.New("player name is already taken")
	ErrNameRequired   = errors.New("player name is required")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameAlreadyFinished = errors.New("game has already been finished")
	ErrInvalidRolls        = errors.New("rolls must be exactly five values between 1 and 6")
)
