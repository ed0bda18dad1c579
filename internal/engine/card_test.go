// internal/engine/card_test.go
package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckStandard(t *testing.T) {
	deck := NewDeck(VariantStandard)
	require.Len(t, deck, 52)

	seen := map[string]bool{}
	for _, c := range deck {
		assert.False(t, seen[c.ID()], "duplicate card %s", c.ID())
		seen[c.ID()] = true
		assert.NotEqual(t, SuitJoker, c.Suit)
	}
	assert.True(t, seen["2C"])
	assert.True(t, seen["2D"])
	assert.True(t, seen["AS"])
	assert.True(t, seen["10H"])
}

func TestNewDeckJokers(t *testing.T) {
	deck := NewDeck(VariantJokers)
	require.Len(t, deck, 52)

	seen := map[string]bool{}
	for _, c := range deck {
		assert.False(t, seen[c.ID()], "duplicate card %s", c.ID())
		seen[c.ID()] = true
	}
	assert.False(t, seen["2C"], "2C is removed in the jokers variant")
	assert.False(t, seen["2D"], "2D is removed in the jokers variant")
	assert.True(t, seen["2H"])
	assert.True(t, seen["2S"])
	assert.True(t, seen["BigJoker"])
	assert.True(t, seen["LittleJoker"])
}

func TestParseCardRoundTrip(t *testing.T) {
	for _, variant := range []Variant{VariantStandard, VariantJokers} {
		for _, c := range NewDeck(variant) {
			parsed, ok := ParseCard(variant, c.ID())
			require.True(t, ok, "variant %s: %s should parse", variant, c.ID())
			assert.Equal(t, c, parsed)
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	bad := []string{"", "A", "S", "1S", "11H", "AX", "10", "as", "BigJokerX", "Joker", "0S", "14S"}
	for _, id := range bad {
		_, ok := ParseCard(VariantStandard, id)
		assert.False(t, ok, "%q should not parse", id)
	}
	// Variant boundaries.
	_, ok := ParseCard(VariantStandard, "BigJoker")
	assert.False(t, ok, "jokers do not exist in the standard deck")
	_, ok = ParseCard(VariantStandard, "LittleJoker")
	assert.False(t, ok)
	_, ok = ParseCard(VariantJokers, "2C")
	assert.False(t, ok, "2C does not exist in the jokers deck")
	_, ok = ParseCard(VariantJokers, "2D")
	assert.False(t, ok)
	_, ok = ParseCard(VariantJokers, "2H")
	assert.True(t, ok)
}

func TestCardOrdering(t *testing.T) {
	big := Card{Suit: SuitJoker, Rank: RankBigJoker}
	little := Card{Suit: SuitJoker, Rank: RankLittleJoker}
	aceSpades := Card{Suit: Spades, Rank: RankA}
	twoSpades := Card{Suit: Spades, Rank: Rank2}

	assert.Greater(t, big.Value(), little.Value(), "Big outranks Little")
	assert.Greater(t, little.Value(), aceSpades.Value(), "jokers outrank the Ace")
	assert.Greater(t, aceSpades.Value(), twoSpades.Value())

	assert.True(t, big.IsTrump())
	assert.True(t, little.IsTrump())
	assert.True(t, aceSpades.IsTrump())
	assert.False(t, Card{Suit: Hearts, Rank: RankA}.IsTrump())
}

func TestShuffledDoesNotMutate(t *testing.T) {
	deck := NewDeck(VariantStandard)
	orig := make([]Card, len(deck))
	copy(orig, deck)

	rng := rand.New(rand.NewSource(7))
	shuffled := Shuffled(deck, rng)

	assert.Equal(t, orig, deck, "input deck must not be mutated")
	require.Len(t, shuffled, len(deck))
	assert.ElementsMatch(t, deck, shuffled, "shuffle is a permutation")
}
