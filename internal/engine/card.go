// internal/engine/card.go
package engine

import (
	"fmt"
	"math/rand"
)

// Variant selects the deck composition for a match.
type Variant string

const (
	// VariantStandard is the plain 52-card deck.
	VariantStandard Variant = "standard"
	// VariantJokers replaces the 2 of clubs and 2 of diamonds with two
	// jokers that always count as trump.
	VariantJokers Variant = "jokers"
)

// Suit is one of the four standard suits, or SuitJoker for the two
// trump-only joker cards in the jokers variant.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
	SuitJoker
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case SuitJoker:
		return "J"
	default:
		return "?"
	}
}

// Rank values are chosen so that the numeric order is the trick-taking
// order: 2 low, Ace high, jokers above Ace.
type Rank int

const (
	Rank2  Rank = 2
	Rank3  Rank = 3
	Rank4  Rank = 4
	Rank5  Rank = 5
	Rank6  Rank = 6
	Rank7  Rank = 7
	Rank8  Rank = 8
	Rank9  Rank = 9
	Rank10 Rank = 10
	RankJ  Rank = 11
	RankQ  Rank = 12
	RankK  Rank = 13
	RankA  Rank = 14
	// RankLittleJoker and RankBigJoker exist only in the jokers variant.
	RankLittleJoker Rank = 15
	RankBigJoker    Rank = 16
)

func (r Rank) String() string {
	switch r {
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	case RankLittleJoker:
		return "LittleJoker"
	case RankBigJoker:
		return "BigJoker"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is an immutable playing card value.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// ID returns the stable identifier for the card: "<rank><suit>" for
// ordinary cards ("AS", "10H") and the two fixed joker literals.
func (c Card) ID() string {
	if c.Suit == SuitJoker {
		return c.Rank.String()
	}
	return c.Rank.String() + c.Suit.String()
}

func (c Card) String() string {
	return c.ID()
}

// Value is the total order used for every "higher card wins" comparison
// in the engine. Jokers sit above the Ace, Big above Little.
func (c Card) Value() int {
	return int(c.Rank)
}

// IsTrump reports whether the card beats non-trump cards in a trick.
// Spades are trump; jokers are always trump.
func (c Card) IsTrump() bool {
	return c.Suit == Spades || c.Suit == SuitJoker
}

var suitByLetter = map[byte]Suit{
	'C': Clubs,
	'D': Diamonds,
	'H': Hearts,
	'S': Spades,
}

var rankByName = map[string]Rank{
	"2": Rank2, "3": Rank3, "4": Rank4, "5": Rank5, "6": Rank6,
	"7": Rank7, "8": Rank8, "9": Rank9, "10": Rank10,
	"J": RankJ, "Q": RankQ, "K": RankK, "A": RankA,
}

// ParseCard decodes a card identifier for the given variant. It is the
// validation boundary for externally supplied identifiers: any string
// that is not a card of the active deck yields ok == false.
func ParseCard(variant Variant, id string) (Card, bool) {
	switch id {
	case "BigJoker":
		if variant != VariantJokers {
			return Card{}, false
		}
		return Card{Suit: SuitJoker, Rank: RankBigJoker}, true
	case "LittleJoker":
		if variant != VariantJokers {
			return Card{}, false
		}
		return Card{Suit: SuitJoker, Rank: RankLittleJoker}, true
	}
	if len(id) < 2 {
		return Card{}, false
	}
	suit, ok := suitByLetter[id[len(id)-1]]
	if !ok {
		return Card{}, false
	}
	rank, ok := rankByName[id[:len(id)-1]]
	if !ok {
		return Card{}, false
	}
	c := Card{Suit: suit, Rank: rank}
	if variant == VariantJokers && rank == Rank2 && (suit == Clubs || suit == Diamonds) {
		// Those deuces are removed from the jokers deck.
		return Card{}, false
	}
	return c, true
}

// NewDeck builds the full 52-card deck for the variant in a fixed,
// deterministic order. Shuffling is a separate step.
func NewDeck(variant Variant) []Card {
	deck := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Rank2; rank <= RankA; rank++ {
			if variant == VariantJokers && rank == Rank2 && (suit == Clubs || suit == Diamonds) {
				continue
			}
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	if variant == VariantJokers {
		deck = append(deck,
			Card{Suit: SuitJoker, Rank: RankLittleJoker},
			Card{Suit: SuitJoker, Rank: RankBigJoker},
		)
	}
	return deck
}

// Shuffled returns a uniformly shuffled copy of deck. The input slice is
// never mutated.
func Shuffled(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
