package draughts

import "errors"

var (
	// ErrInvariant marks a programming error: the caller asked the engine to
	// do something the state machine should never allow.
	ErrInvariant = errors.New("draughts invariant violation")

	ErrInvalidSetup = errors.New("invalid board setup")
)
