// internal/engine/rules.go
package engine

// Play is one (seat, card) entry of a trick.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// followsLead reports whether playing c satisfies the follow-suit
// requirement for led. Jokers have no natural suit: they satisfy a spade
// lead (they are trump) but never a plain-suit lead.
func followsLead(c Card, led Suit) bool {
	if led == Spades {
		return c.IsTrump()
	}
	return c.Suit == led
}

// LegalPlays computes the subset of hand that may be played given the
// led suit for the current trick (nil means this player leads) and
// whether spades have been broken this hand.
//
// The result is never empty for a non-empty hand: a player void in the
// led suit may play anything, and a player holding only trump may lead it.
func LegalPlays(hand []Card, led *Suit, spadesBroken bool) []Card {
	if len(hand) == 0 {
		return nil
	}
	if led == nil {
		if spadesBroken {
			return append([]Card(nil), hand...)
		}
		out := make([]Card, 0, len(hand))
		for _, c := range hand {
			if !c.IsTrump() {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			// Nothing but trump left; the lead restriction lapses.
			return append([]Card(nil), hand...)
		}
		return out
	}

	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if followsLead(c, *led) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		// Void in the led suit: anything goes, including trump.
		return append([]Card(nil), hand...)
	}
	return out
}

// beats reports whether c strictly outranks best within a trick where
// led is the led suit.
func beats(c, best Card, led Suit) bool {
	switch {
	case c.IsTrump() && best.IsTrump():
		return c.Value() > best.Value()
	case c.IsTrump():
		return true
	case best.IsTrump():
		return false
	case c.Suit == best.Suit:
		return c.Value() > best.Value()
	default:
		// An off-suit discard never wins.
		return c.Suit == led && best.Suit != led
	}
}

// TrickWinner determines the winning seat of a completed trick. The
// first play is the initial candidate; each later play replaces it only
// by strictly outranking it, so the result does not depend on the order
// the plays are compared in. The deck has no duplicates, so ties cannot
// occur.
func TrickWinner(plays []Play, led Suit) Seat {
	best := plays[0]
	for _, p := range plays[1:] {
		if beats(p.Card, best.Card, led) {
			best = p
		}
	}
	return best.Seat
}
