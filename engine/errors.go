package engine

import "errors"

var (
	// ErrIllegalAction is returned when an action's legality predicate fails:
	// wrong phase, insufficient chips, invalid target hand. State is never
	// partially mutated.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvalidBetAmount is returned for a non-positive bet or one that
	// exceeds the player's chips.
	ErrInvalidBetAmount = errors.New("invalid bet amount")

	// ErrShoeExhausted is returned by Shoe.Draw when the shoe is empty.
	ErrShoeExhausted = errors.New("shoe exhausted")

	// ErrUnknownAction is returned for a malformed or unrecognized request.
	ErrUnknownAction = errors.New("unknown action")
)
