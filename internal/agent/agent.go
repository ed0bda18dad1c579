// internal/agent/agent.go
package agent

import (
	"context"
	"fmt"

	"github.com/spadearena/spades/internal/engine"
)

// Agent decides one seat's actions from its observation. Implementations
// may be slow or remote; the match runner bounds each call with a
// context deadline and falls back on error, so an Agent can never stall
// a match.
type Agent interface {
	// Bid returns a bid in 0..13 for the observed hand.
	Bid(ctx context.Context, obs engine.Observation) (int, error)
	// Play returns the identifier of a card from obs.LegalPlays.
	Play(ctx context.Context, obs engine.Observation) (string, error)
}

// Factory builds a fresh agent instance for one seat.
type Factory func(seed int64) Agent

var registry = map[string]Factory{
	"random":    func(seed int64) Agent { return NewRandom(seed) },
	"heuristic": func(seed int64) Agent { return NewHeuristic(seed) },
}

// New builds a registered agent by name.
func New(name string, seed int64) (Agent, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q", name)
	}
	return f(seed), nil
}

// Names lists the registered agent kinds.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// parseHand decodes a list of card identifiers from an observation. The
// engine produced them, so failures are programmer errors.
func parseHand(variant engine.Variant, ids []string) []engine.Card {
	out := make([]engine.Card, 0, len(ids))
	for _, id := range ids {
		c, ok := engine.ParseCard(variant, id)
		if !ok {
			panic(fmt.Sprintf("agent: engine handed out unparseable card %q", id))
		}
		out = append(out, c)
	}
	return out
}
