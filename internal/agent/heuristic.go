// internal/agent/heuristic.go
package agent

import (
	"context"
	"errors"
	"math/rand"
	"sort"

	"github.com/spadearena/spades/internal/engine"
)

// Heuristic counts probable trick winners for its bid and plays the
// cheapest card that still takes the trick, dumping its lowest loser
// otherwise.
type Heuristic struct {
	rng *rand.Rand
}

func NewHeuristic(seed int64) *Heuristic {
	return &Heuristic{rng: rand.New(rand.NewSource(seed))}
}

func (a *Heuristic) Bid(_ context.Context, obs engine.Observation) (int, error) {
	hand := parseHand(obs.Variant, obs.Hand)

	bid := 0
	trumps := 0
	for _, c := range hand {
		if c.IsTrump() {
			trumps++
		}
		switch {
		case c.Suit == engine.SuitJoker:
			bid++
		case c.Suit == engine.Spades && c.Rank >= engine.RankQ:
			bid++
		case c.Suit != engine.Spades && c.Rank == engine.RankA:
			bid++
		}
	}
	// Long trump holdings win extra tricks off the bottom.
	if trumps > 4 {
		bid += trumps - 4
	}
	if bid < 1 {
		bid = 1
	}
	if bid > 13 {
		bid = 13
	}
	return bid, nil
}

func (a *Heuristic) Play(_ context.Context, obs engine.Observation) (string, error) {
	if len(obs.LegalPlays) == 0 {
		return "", errors.New("heuristic agent: no legal plays in observation")
	}
	legal := parseHand(obs.Variant, obs.LegalPlays)
	sort.Slice(legal, func(i, j int) bool { return legal[i].Value() < legal[j].Value() })

	if len(obs.CurrentTrick) == 0 {
		return a.lead(legal).ID(), nil
	}

	led, ok := engine.ParseCard(obs.Variant, obs.CurrentTrick[0].Card)
	if !ok {
		return "", errors.New("heuristic agent: bad led card in observation")
	}
	ledSuit := led.Suit
	if ledSuit == engine.SuitJoker {
		ledSuit = engine.Spades
	}

	plays := make([]engine.Play, 0, len(obs.CurrentTrick))
	for _, tv := range obs.CurrentTrick {
		c, ok := engine.ParseCard(obs.Variant, tv.Card)
		if !ok {
			return "", errors.New("heuristic agent: bad trick card in observation")
		}
		plays = append(plays, engine.Play{Seat: tv.Seat, Card: c})
	}
	winningSeat := engine.TrickWinner(plays, ledSuit)

	// Partner already has the trick: throw the cheapest card.
	if winningSeat == obs.PartnerSeat {
		return legal[0].ID(), nil
	}

	// Cheapest card that takes the trick, if any.
	for _, c := range legal {
		candidate := append(append([]engine.Play(nil), plays...), engine.Play{Seat: obs.Seat, Card: c})
		if engine.TrickWinner(candidate, ledSuit) == obs.Seat {
			return c.ID(), nil
		}
	}
	return legal[0].ID(), nil
}

// lead prefers the lowest card of a plain suit, saving trump for later
// tricks.
func (a *Heuristic) lead(legal []engine.Card) engine.Card {
	for _, c := range legal {
		if !c.IsTrump() {
			return c
		}
	}
	return legal[0]
}
