// internal/agent/agent_test.go
package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spadearena/spades/internal/engine"
)

func TestRegistry(t *testing.T) {
	for _, name := range []string{"random", "heuristic"} {
		a, err := New(name, 1)
		require.NoError(t, err)
		require.NotNil(t, a)
	}
	_, err := New("stockfish", 1)
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{"random", "heuristic"}, Names())
}

// Every registered agent must produce a valid bid and a legal play for
// any observation the engine can produce.
func TestAgentsProduceLegalActions(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"random", "heuristic"} {
		for _, variant := range []engine.Variant{engine.VariantStandard, engine.VariantJokers} {
			t.Run(name+"/"+string(variant), func(t *testing.T) {
				agents := [engine.NumSeats]Agent{}
				for i := range agents {
					a, err := New(name, int64(i+1))
					require.NoError(t, err)
					agents[i] = a
				}
				g, err := engine.NewGame(engine.Config{TargetScore: 120, Variant: variant, Seed: 3})
				require.NoError(t, err)

				for g.Phase != engine.PhaseGameOver {
					require.Less(t, g.HandNumber, 200, "match must terminate")
					seat := g.Turn
					obs := g.Observe(seat)
					switch g.Phase {
					case engine.PhaseBidding:
						bid, err := agents[seat].Bid(ctx, obs)
						require.NoError(t, err)
						require.NoError(t, g.SubmitBid(seat, bid), "agent %s produced invalid bid %d", name, bid)
					case engine.PhasePlaying:
						if g.TrickReady() {
							g.ResolveTrick()
							continue
						}
						id, err := agents[seat].Play(ctx, obs)
						require.NoError(t, err)
						assert.Contains(t, obs.LegalPlays, id)
						require.NoError(t, g.PlayCard(seat, id), "agent %s produced illegal play %s", name, id)
					}
				}
				_, decided := g.Winner()
				assert.True(t, decided)
			})
		}
	}
}

func TestHeuristicBidRange(t *testing.T) {
	a := NewHeuristic(9)
	g, err := engine.NewGame(engine.Config{TargetScore: 500, Seed: 17})
	require.NoError(t, err)
	for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
		bid, err := a.Bid(context.Background(), g.Observe(seat))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bid, 1)
		assert.LessOrEqual(t, bid, 13)
	}
}
