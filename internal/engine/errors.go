// internal/engine/errors.go
package engine

import "errors"

// Validation failures returned by the mutating entry points. Callers
// distinguish them with errors.Is; the engine never panics for these.
var (
	// ErrWrongPhase: the action does not belong to the current phase.
	ErrWrongPhase = errors.New("action not valid in current phase")
	// ErrWrongTurn: the acting seat is not the seat to act.
	ErrWrongTurn = errors.New("not this seat's turn")
	// ErrBadSeat: seat outside 0..3.
	ErrBadSeat = errors.New("seat out of range")
	// ErrInvalidBid: bid outside 0..13.
	ErrInvalidBid = errors.New("bid out of range")
	// ErrBadCard: the card identifier does not parse in the active variant.
	ErrBadCard = errors.New("invalid card identifier")
	// ErrCardNotHeld: a well-formed card the acting player does not hold.
	ErrCardNotHeld = errors.New("card not in hand")
	// ErrIllegalPlay: a held card excluded by the legal-plays rule.
	ErrIllegalPlay = errors.New("card not legal to play")
)
