// internal/engine/scoring_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreHandMadeWithOvertricks(t *testing.T) {
	// Partnership bids (4,4), wins 10 tricks total.
	in := TeamHandInput{Bids: [2]int{4, 4}, Tricks: [2]int{6, 4}}
	next, b := ScoreHand(in, TeamScore{})

	assert.Equal(t, 8, b.TeamBid)
	assert.Equal(t, 10, b.TeamTricks)
	assert.True(t, b.Made)
	assert.Equal(t, 82, b.Points, "80 for the bid plus 2 overtricks")
	assert.Equal(t, 2, b.BagsEarned)
	assert.Equal(t, TeamScore{Score: 82, Bags: 2}, next)
}

func TestScoreHandSet(t *testing.T) {
	in := TeamHandInput{Bids: [2]int{5, 3}, Tricks: [2]int{3, 2}}
	next, b := ScoreHand(in, TeamScore{Score: 120, Bags: 4})

	assert.False(t, b.Made)
	assert.Equal(t, -80, b.Points)
	assert.Equal(t, 0, b.BagsEarned, "no bags accrue on a set")
	assert.Equal(t, TeamScore{Score: 40, Bags: 4}, next)
}

func TestScoreHandNilSuccessWithPartnerOvertricks(t *testing.T) {
	// (0,3): nil player wins 0, partner wins 5 against the team bid of 3.
	in := TeamHandInput{Bids: [2]int{0, 3}, Tricks: [2]int{0, 5}}
	next, b := ScoreHand(in, TeamScore{})

	assert.Equal(t, 100, b.NilBonus)
	assert.Equal(t, 3, b.TeamBid)
	assert.Equal(t, 5, b.TeamTricks)
	assert.Equal(t, 132, b.Points, "+100 nil, +30 bid, +2 overtricks")
	assert.Equal(t, 2, b.BagsEarned)
	assert.Equal(t, TeamScore{Score: 132, Bags: 2}, next)
}

func TestScoreHandNilFailure(t *testing.T) {
	in := TeamHandInput{Bids: [2]int{0, 4}, Tricks: [2]int{2, 4}}
	next, b := ScoreHand(in, TeamScore{})

	assert.Equal(t, -100, b.NilBonus)
	// The nil player's tricks do not count toward the team contract.
	assert.Equal(t, 4, b.TeamTricks)
	assert.Equal(t, -60, b.Points, "-100 nil, +40 made bid")
	assert.Equal(t, TeamScore{Score: -60, Bags: 0}, next)
}

func TestScoreHandDoubleNil(t *testing.T) {
	in := TeamHandInput{Bids: [2]int{0, 0}, Tricks: [2]int{0, 1}}
	next, b := ScoreHand(in, TeamScore{})

	assert.Equal(t, 0, b.NilBonus, "one nil makes, one fails")
	assert.Equal(t, 0, b.TeamBid)
	assert.Equal(t, 0, b.Points)
	assert.Equal(t, TeamScore{}, next)
}

func TestScoreHandBagPenalty(t *testing.T) {
	// Enter the hand with 8 bags, earn 3 overtricks: bags hit 11, one
	// penalty cycle fires.
	in := TeamHandInput{Bids: [2]int{3, 2}, Tricks: [2]int{5, 3}}
	next, b := ScoreHand(in, TeamScore{Score: 200, Bags: 8})

	assert.Equal(t, 3, b.BagsEarned)
	assert.Equal(t, 100, b.BagPenalty)
	assert.Equal(t, 1, next.Bags)
	// +50 bid, +3 overtricks, -100 penalty.
	assert.Equal(t, 200+53-100, next.Score)
}

func TestScoreHandBagsAlwaysNormalized(t *testing.T) {
	for prevBags := 0; prevBags <= 9; prevBags++ {
		for over := 0; over <= 12; over++ {
			in := TeamHandInput{Bids: [2]int{1, 0}, Tricks: [2]int{1 + over, 0}}
			next, _ := ScoreHand(in, TeamScore{Bags: prevBags})
			assert.GreaterOrEqual(t, next.Bags, 0)
			assert.LessOrEqual(t, next.Bags, 9, "prevBags=%d over=%d", prevBags, over)
		}
	}
}

func TestScoreHandDeterministic(t *testing.T) {
	in := TeamHandInput{Bids: [2]int{0, 6}, Tricks: [2]int{1, 9}}
	prev := TeamScore{Score: -40, Bags: 7}
	a1, b1 := ScoreHand(in, prev)
	a2, b2 := ScoreHand(in, prev)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, TeamScore{Score: -40, Bags: 7}, prev, "input must not be mutated")
}
