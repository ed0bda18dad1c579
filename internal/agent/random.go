// internal/agent/random.go
package agent

import (
	"context"
	"errors"
	"math/rand"

	"github.com/spadearena/spades/internal/engine"
)

// Random plays a uniformly random legal card and bids a small random
// contract. It is the baseline opponent.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Bid(_ context.Context, _ engine.Observation) (int, error) {
	return 1 + a.rng.Intn(4), nil
}

func (a *Random) Play(_ context.Context, obs engine.Observation) (string, error) {
	if len(obs.LegalPlays) == 0 {
		return "", errors.New("random agent: no legal plays in observation")
	}
	return obs.LegalPlays[a.rng.Intn(len(obs.LegalPlays))], nil
}
