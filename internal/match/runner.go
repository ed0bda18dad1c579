// internal/match/runner.go
package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spadearena/spades/internal/agent"
	"github.com/spadearena/spades/internal/engine"
)

// DefaultTurnTimeout bounds a single agent decision.
const DefaultTurnTimeout = 30 * time.Second

// Config describes one match to run.
type Config struct {
	Agents      [engine.NumSeats]agent.Agent
	Names       [engine.NumSeats]string
	TargetScore int
	Variant     engine.Variant
	Seed        int64
	TurnTimeout time.Duration
	Logger      *logrus.Logger
}

// Result is the final outcome of a completed match.
type Result struct {
	MatchID     uuid.UUID               `json:"matchId"`
	WinningTeam int                     `json:"winningTeam"`
	Teams       [2]engine.TeamScore     `json:"teams"`
	Names       [engine.NumSeats]string `json:"names"`
	Hands       []engine.HandSummary    `json:"hands"`
}

// Snapshot is the public view of a live match for listing endpoints.
type Snapshot struct {
	ID         uuid.UUID               `json:"id"`
	Phase      engine.Phase            `json:"phase"`
	HandNumber int                     `json:"handNumber"`
	Teams      [2]engine.TeamScore     `json:"teams"`
	Names      [engine.NumSeats]string `json:"names"`
}

// Runner owns one engine.Game and its four agents, alternating between
// querying the agent on turn and feeding the action back into the
// engine. The engine stays single-threaded: the runner serializes all
// access under its mutex.
type Runner struct {
	ID uuid.UUID

	mu     sync.Mutex
	game   *engine.Game
	agents [engine.NumSeats]agent.Agent
	names  [engine.NumSeats]string

	turnTimeout time.Duration
	log         *logrus.Entry

	// BroadcastFn sends public events to all spectators. If nil, no
	// broadcast is done.
	BroadcastFn func(ev Event)
	// BroadcastSeatFn sends a private event for a single seat.
	BroadcastSeatFn func(seat engine.Seat, ev Event)
}

// NewRunner builds a runner with a fresh game. The game is dealt but not
// running until Run is called.
func NewRunner(cfg Config) (*Runner, error) {
	for i, a := range cfg.Agents {
		if a == nil {
			return nil, fmt.Errorf("seat %d has no agent", i)
		}
	}
	g, err := engine.NewGame(engine.Config{
		TargetScore: cfg.TargetScore,
		Variant:     cfg.Variant,
		Seed:        cfg.Seed,
		Names:       cfg.Names,
	})
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	timeout := cfg.TurnTimeout
	if timeout <= 0 {
		timeout = DefaultTurnTimeout
	}
	id := uuid.New()
	return &Runner{
		ID:          id,
		game:        g,
		agents:      cfg.Agents,
		names:       cfg.Names,
		turnTimeout: timeout,
		log:         logger.WithField("match", id.String()),
	}, nil
}

// Snapshot returns the public state of the match.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		ID:         r.ID,
		Phase:      r.game.Phase,
		HandNumber: r.game.HandNumber,
		Teams:      r.game.Teams,
		Names:      r.names,
	}
}

// Run drives the match to completion. It returns early with ctx.Err()
// if the context is cancelled between actions.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.emitHandDealt()
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		r.mu.Lock()
		phase := r.game.Phase
		r.mu.Unlock()

		switch phase {
		case engine.PhaseBidding:
			r.stepBid(ctx)
		case engine.PhasePlaying:
			r.stepPlay(ctx)
		case engine.PhaseGameOver:
			return r.finish(), nil
		}
	}
}

func (r *Runner) stepBid(ctx context.Context) {
	r.mu.Lock()
	seat := r.game.Turn
	obs := r.game.Observe(seat)
	r.mu.Unlock()

	value, err := r.askBid(ctx, seat, obs)
	if err != nil {
		r.fallback(seat, "bid", err)
		value = 1 // deterministic fallback: minimum non-nil bid
	}

	r.mu.Lock()
	err = r.game.SubmitBid(seat, value)
	if err != nil {
		r.log.WithFields(logrus.Fields{"seat": seat, "bid": value}).Warnf("rejected bid: %v", err)
		value = 1
		err = r.game.SubmitBid(seat, value)
	}
	r.mu.Unlock()
	if err != nil {
		// The fallback bid is always valid on our own turn.
		panic(fmt.Sprintf("match: fallback bid rejected: %v", err))
	}
	r.emit(Event{Type: EventPlayerBid, Seat: seatPtr(seat), Bid: intPtr(value)})
}

func (r *Runner) stepPlay(ctx context.Context) {
	r.mu.Lock()
	if r.game.TrickReady() {
		res := r.game.ResolveTrick()
		r.mu.Unlock()
		r.afterResolve(res)
		return
	}
	seat := r.game.Turn
	obs := r.game.Observe(seat)
	r.mu.Unlock()

	cardID, err := r.askPlay(ctx, seat, obs)
	if err != nil {
		r.fallback(seat, "play", err)
		cardID = lowestCard(obs)
	}

	r.mu.Lock()
	err = r.game.PlayCard(seat, cardID)
	if err != nil {
		r.log.WithFields(logrus.Fields{"seat": seat, "card": cardID}).Warnf("rejected play: %v", err)
		cardID = lowestCard(obs)
		err = r.game.PlayCard(seat, cardID)
	}
	r.mu.Unlock()
	if err != nil {
		// The lowest legal card is always playable on our own turn.
		panic(fmt.Sprintf("match: fallback play rejected: %v", err))
	}
	r.emit(Event{Type: EventPlayerPlay, Seat: seatPtr(seat), Card: cardID})
}

func (r *Runner) afterResolve(res engine.TrickResult) {
	r.emit(Event{Type: EventTrickWon, Seat: seatPtr(res.Winner), Payload: map[string]interface{}{
		"trickNumber": res.TrickNumber,
	}})
	if !res.HandDone {
		return
	}
	r.emit(Event{Type: EventHandScored, Payload: map[string]interface{}{
		"hand": res.Hand,
	}})
	if !res.GameOver {
		r.emitHandDealt()
	}
}

func (r *Runner) finish() Result {
	r.mu.Lock()
	winner, _ := r.game.Winner()
	result := Result{
		MatchID:     r.ID,
		WinningTeam: winner,
		Teams:       r.game.Teams,
		Names:       r.names,
		Hands:       append([]engine.HandSummary(nil), r.game.Summaries...),
	}
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"winner": winner,
		"scores": fmt.Sprintf("%d/%d", result.Teams[0].Score, result.Teams[1].Score),
		"hands":  len(result.Hands),
	}).Info("match finished")
	r.emit(Event{Type: EventGameEnd, Payload: map[string]interface{}{
		"winningTeam": winner,
		"teams":       result.Teams,
	}})
	return result
}

// askBid queries the seat's agent under the turn deadline.
func (r *Runner) askBid(ctx context.Context, seat engine.Seat, obs engine.Observation) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.turnTimeout)
	defer cancel()

	type answer struct {
		value int
		err   error
	}
	ch := make(chan answer, 1)
	go func() {
		v, err := r.agents[seat].Bid(ctx, obs)
		ch <- answer{v, err}
	}()
	select {
	case a := <-ch:
		return a.value, a.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (r *Runner) askPlay(ctx context.Context, seat engine.Seat, obs engine.Observation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.turnTimeout)
	defer cancel()

	type answer struct {
		card string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		c, err := r.agents[seat].Play(ctx, obs)
		ch <- answer{c, err}
	}()
	select {
	case a := <-ch:
		return a.card, a.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *Runner) fallback(seat engine.Seat, kind string, err error) {
	r.log.WithFields(logrus.Fields{"seat": seat, "kind": kind}).Warnf("agent failed, applying default action: %v", err)
	r.emit(Event{Type: EventFallback, Seat: seatPtr(seat), Payload: map[string]interface{}{
		"kind":   kind,
		"reason": err.Error(),
	}})
}

func (r *Runner) emitHandDealt() {
	r.mu.Lock()
	handNumber := r.game.HandNumber
	dealer := r.game.Dealer
	hands := [engine.NumSeats][]string{}
	for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
		hands[seat] = r.game.Observe(seat).Hand
	}
	r.mu.Unlock()

	r.emit(Event{Type: EventHandDealt, Payload: map[string]interface{}{
		"handNumber": handNumber,
		"dealer":     dealer,
	}})
	for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
		r.emitSeat(seat, Event{Type: EventPrivateHand, Seat: seatPtr(seat), Payload: map[string]interface{}{
			"hand": hands[seat],
		}})
	}
}

func (r *Runner) emit(ev Event) {
	if r.BroadcastFn != nil {
		r.BroadcastFn(ev)
	}
}

func (r *Runner) emitSeat(seat engine.Seat, ev Event) {
	if r.BroadcastSeatFn != nil {
		r.BroadcastSeatFn(seat, ev)
	}
}

// lowestCard is the deterministic fallback play: the lowest-valued legal
// card, with suit order breaking ties.
func lowestCard(obs engine.Observation) string {
	best := ""
	bestCard := engine.Card{}
	for _, id := range obs.LegalPlays {
		c, ok := engine.ParseCard(obs.Variant, id)
		if !ok {
			continue
		}
		if best == "" || c.Value() < bestCard.Value() ||
			(c.Value() == bestCard.Value() && c.Suit < bestCard.Suit) {
			best = id
			bestCard = c
		}
	}
	return best
}
