package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrGameNotFound    = errors.New("game not found")
	ErrUnknownStrategy = errors.New("unknown opponent strategy")

	// Placement errors
	ErrInvalidIndex         = errors.New("index is outside the board")
	ErrInvalidPlacement     = errors.New("ship placement is out of bounds or overlapping")
	ErrNotPlacementPhase    = errors.New("ships can only be placed during placement")
	ErrFleetPlacementFailed = errors.New("could not place fleet within attempt limit")

	// Play errors
	ErrPlacementInProgress = errors.New("ships are still being placed")
	ErrNotPlayerTurn       = errors.New("waiting for the opponent to reply")
	ErrNotOpponentTurn     = errors.New("not the opponent's turn")
	ErrAlreadyTargeted     = errors.New("cell has already been fired at")
	ErrNoTargetsLeft       = errors.New("no cells left to fire at")
	ErrGameOver            = errors.New("game is over")
)
