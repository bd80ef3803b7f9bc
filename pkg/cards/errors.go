package cards

import "errors"

// Sentinel errors shared across the engine. Callers test for these with
// errors.Is after unwrapping.
var (
	// ErrInvalidInput covers malformed notation, wrong card counts and
	// duplicate cards. Input problems are surfaced, never silently fixed
	// (the lone exception is the documented '1' -> 'T' rank normalization).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDeckExhausted means a simulation asked for more unseen cards than
	// remain in the deck. It is checked before trials run.
	ErrDeckExhausted = errors.New("deck exhausted")
)
