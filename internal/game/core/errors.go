package core

import (
	"errors"
	"fmt"
)

// Reasons a queued command is discarded. None of them stop a simulation.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNotAdjacent        = errors.New("tiles are not adjacent")
	ErrMoveToSelf         = errors.New("cannot move to the same tile")
	ErrNotOwned           = errors.New("tile not owned by player")
	ErrInsufficientArmy   = errors.New("insufficient army to move")
	ErrTargetIsMountain   = errors.New("target tile is a mountain")
	ErrInvalidPlayer      = errors.New("invalid player ID")
)

// Setup errors raised while building a match from a replay.
var (
	ErrInvalidIndex = errors.New("board index out of range")
	ErrNoPlayers    = errors.New("replay has no players")
)

// CommandError describes why a command could not be applied.
type CommandError struct {
	Player int
	From   Coordinate
	To     Coordinate
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("player %d: move from %s to %s: %v", e.Player, e.From, e.To, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// WrapCommandError attaches command context to err. Returns nil for a nil err.
func WrapCommandError(b *Board, cmd Command, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		Player: cmd.Player,
		From:   FromIndex(cmd.From, b.W),
		To:     FromIndex(cmd.To, b.W),
		Err:    err,
	}
}

// GameStateError wraps an error raised during a particular turn and phase.
type GameStateError struct {
	Turn  int
	Phase string
	Err   error
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("game turn %d [%s]: %v", e.Turn, e.Phase, e.Err)
}

func (e *GameStateError) Unwrap() error { return e.Err }

// WrapGameStateError returns nil for a nil err.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &GameStateError{Turn: turn, Phase: phase, Err: err}
}
