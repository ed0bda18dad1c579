// internal/match/runner_test.go
package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spadearena/spades/internal/agent"
	"github.com/spadearena/spades/internal/engine"
)

// eventRecorder collects broadcast events instead of sending them over WS.
type eventRecorder struct {
	mu         sync.Mutex
	public     []Event
	seatEvents map[engine.Seat][]Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{seatEvents: make(map[engine.Seat][]Event)}
}

func (er *eventRecorder) broadcast(ev Event) {
	er.mu.Lock()
	defer er.mu.Unlock()
	er.public = append(er.public, ev)
}

func (er *eventRecorder) broadcastSeat(seat engine.Seat, ev Event) {
	er.mu.Lock()
	defer er.mu.Unlock()
	er.seatEvents[seat] = append(er.seatEvents[seat], ev)
}

func (er *eventRecorder) count(t EventType) int {
	er.mu.Lock()
	defer er.mu.Unlock()
	n := 0
	for _, ev := range er.public {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func newTestRunner(t *testing.T, agents [engine.NumSeats]agent.Agent) (*Runner, *eventRecorder) {
	t.Helper()
	r, err := NewRunner(Config{
		Agents:      agents,
		Names:       [engine.NumSeats]string{"a0", "a1", "a2", "a3"},
		TargetScore: 100,
		Seed:        21,
		TurnTimeout: 2 * time.Second,
		Logger:      testLogger(),
	})
	require.NoError(t, err)
	er := newEventRecorder()
	r.BroadcastFn = er.broadcast
	r.BroadcastSeatFn = er.broadcastSeat
	return r, er
}

func randomTable(t *testing.T) [engine.NumSeats]agent.Agent {
	t.Helper()
	var agents [engine.NumSeats]agent.Agent
	for i := range agents {
		a, err := agent.New("random", int64(i+40))
		require.NoError(t, err)
		agents[i] = a
	}
	return agents
}

func TestRunnerCompletesMatch(t *testing.T) {
	r, er := newTestRunner(t, randomTable(t))

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, []int{0, 1}, result.WinningTeam)
	assert.GreaterOrEqual(t, result.Teams[result.WinningTeam].Score, 100)
	require.NotEmpty(t, result.Hands)

	hands := len(result.Hands)
	assert.Equal(t, hands, er.count(EventHandScored))
	assert.Equal(t, hands*4, er.count(EventPlayerBid), "four bids per hand")
	assert.Equal(t, hands*13, er.count(EventTrickWon), "thirteen tricks per hand")
	assert.Equal(t, hands*13*4, er.count(EventPlayerPlay))
	assert.Equal(t, 1, er.count(EventGameEnd))

	// Every seat received its private hand for every deal.
	for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
		assert.Len(t, er.seatEvents[seat], hands)
	}

	snap := r.Snapshot()
	assert.Equal(t, engine.PhaseGameOver, snap.Phase)
}

// brokenAgent always errors; the runner's deterministic fallback must
// still carry the match to completion.
type brokenAgent struct{}

func (brokenAgent) Bid(context.Context, engine.Observation) (int, error) {
	return 0, errors.New("model unavailable")
}
func (brokenAgent) Play(context.Context, engine.Observation) (string, error) {
	return "", errors.New("model unavailable")
}

// cheatingAgent returns well-formed but illegal actions.
type cheatingAgent struct{}

func (cheatingAgent) Bid(context.Context, engine.Observation) (int, error) { return 99, nil }
func (cheatingAgent) Play(_ context.Context, obs engine.Observation) (string, error) {
	return "AS", nil // usually not held or not legal
}

func TestRunnerFallbackOnBrokenAgent(t *testing.T) {
	agents := randomTable(t)
	agents[2] = brokenAgent{}
	r, er := newTestRunner(t, agents)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, result.WinningTeam)
	assert.Greater(t, er.count(EventFallback), 0, "broken agent must trigger fallbacks")
}

func TestRunnerFallbackOnIllegalActions(t *testing.T) {
	agents := randomTable(t)
	agents[1] = cheatingAgent{}
	r, _ := newTestRunner(t, agents)

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, result.WinningTeam)
}

// slowAgent never answers within any reasonable deadline.
type slowAgent struct{}

func (slowAgent) Bid(ctx context.Context, _ engine.Observation) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}
func (slowAgent) Play(ctx context.Context, _ engine.Observation) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRunnerTimesOutSlowAgent(t *testing.T) {
	agents := randomTable(t)
	agents[3] = slowAgent{}
	r, err := NewRunner(Config{
		Agents:      agents,
		TargetScore: 60,
		Seed:        8,
		TurnTimeout: 5 * time.Millisecond,
		Logger:      testLogger(),
	})
	require.NoError(t, err)
	er := newEventRecorder()
	r.BroadcastFn = er.broadcast

	result, runErr := r.Run(context.Background())
	require.NoError(t, runErr)
	assert.Contains(t, []int{0, 1}, result.WinningTeam)
	assert.Greater(t, er.count(EventFallback), 0, "timeouts must trigger fallbacks")
}

func TestRunnerHonorsCancellation(t *testing.T) {
	r, _ := newTestRunner(t, randomTable(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore(t *testing.T) {
	s := NewStore()
	r, _ := newTestRunner(t, randomTable(t))

	s.Add(r)
	got, ok := s.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, r, got)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)

	s.Delete(r.ID)
	_, ok = s.Get(r.ID)
	assert.False(t, ok)
}
