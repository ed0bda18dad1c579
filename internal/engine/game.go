// internal/engine/game.go
package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Seat identifies one of the four positions at the table. Seats 0 and 2
// are partners, as are 1 and 3.
type Seat int

// NumSeats is the fixed table size.
const NumSeats = 4

// Next returns the seat to the left.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Team returns the partnership index (0 for seats 0/2, 1 for seats 1/3).
func (s Seat) Team() int { return int(s) % 2 }

// Phase is the match state-machine phase.
type Phase string

const (
	PhaseBidding  Phase = "bidding"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// PlayerState is the per-seat mutable record. Mutated only through the
// Game's validated entry points.
type PlayerState struct {
	Name   string `json:"name"`
	Human  bool   `json:"human"`
	Hand   []Card `json:"-"`
	Bid    *int   `json:"bid"`
	Tricks int    `json:"tricks"`
}

// Trick is an ordered sequence of up to four plays. LedSuit is set by the
// first play; Winner is set by ResolveTrick. Completed tricks in the hand
// history are never mutated again.
type Trick struct {
	Number  int    `json:"number"` // 1..13 within the hand
	Plays   []Play `json:"plays"`
	LedSuit *Suit  `json:"ledSuit"`
	Winner  *Seat  `json:"winner"`
}

// HandSummary records how a completed hand scored, for display by the
// embedding layer.
type HandSummary struct {
	HandNumber int              `json:"handNumber"`
	Bids       [NumSeats]int    `json:"bids"`
	Tricks     [NumSeats]int    `json:"tricks"`
	Teams      [2]HandBreakdown `json:"teams"`
	Totals     [2]TeamScore     `json:"totals"`
}

// TrickResult is returned by ResolveTrick.
type TrickResult struct {
	Winner      Seat         `json:"winner"`
	TrickNumber int          `json:"trickNumber"`
	HandDone    bool         `json:"handDone"`
	Hand        *HandSummary `json:"hand,omitempty"` // set when HandDone
	GameOver    bool         `json:"gameOver"`
}

// Config is the construction-time surface of a match.
type Config struct {
	TargetScore int     // any positive integer; typical 250/500/1000
	Variant     Variant // defaults to VariantStandard
	Seed        int64   // 0 => time-seeded
	Names       [NumSeats]string
	Humans      [NumSeats]bool
}

// Game owns the entire mutable state of one match. It is single-threaded
// and synchronous: the embedding layer serializes calls, and the engine
// protects itself via rejection, not locks.
type Game struct {
	Variant     Variant
	TargetScore int

	Phase        Phase
	Dealer       Seat
	Turn         Seat
	Players      [NumSeats]*PlayerState
	Teams        [2]TeamScore
	Trick        Trick
	History      []Trick
	SpadesBroken bool
	HandNumber   int

	// Summaries accumulates one entry per scored hand for the match.
	Summaries []HandSummary

	rng *rand.Rand
}

// NewGame constructs a match and deals the first hand. The first dealer
// is seat 0; bidding opens at the dealer's left.
func NewGame(cfg Config) (*Game, error) {
	if cfg.TargetScore <= 0 {
		return nil, fmt.Errorf("target score must be positive, got %d", cfg.TargetScore)
	}
	variant := cfg.Variant
	if variant == "" {
		variant = VariantStandard
	}
	if variant != VariantStandard && variant != VariantJokers {
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		Variant:     variant,
		TargetScore: cfg.TargetScore,
		Dealer:      0,
		HandNumber:  0,
		rng:         rand.New(rand.NewSource(seed)),
	}
	for i := Seat(0); i < NumSeats; i++ {
		name := cfg.Names[i]
		if name == "" {
			name = fmt.Sprintf("Player %d", i)
		}
		g.Players[i] = &PlayerState{Name: name, Human: cfg.Humans[i]}
	}
	g.dealHand()
	return g, nil
}

// dealHand resets per-hand state and partitions a fresh shuffle into four
// 13-card hands. Team scores and bags persist across hands.
func (g *Game) dealHand() {
	deck := Shuffled(NewDeck(g.Variant), g.rng)
	for i := Seat(0); i < NumSeats; i++ {
		p := g.Players[i]
		p.Hand = make([]Card, 0, 13)
		p.Bid = nil
		p.Tricks = 0
	}
	for i, c := range deck {
		seat := (g.Dealer.Next() + Seat(i)) % NumSeats
		g.Players[seat].Hand = append(g.Players[seat].Hand, c)
	}
	for i := Seat(0); i < NumSeats; i++ {
		sortHand(g.Players[i].Hand)
	}
	g.HandNumber++
	g.Phase = PhaseBidding
	g.Turn = g.Dealer.Next()
	g.Trick = Trick{Number: 1}
	g.History = nil
	g.SpadesBroken = false
}

// sortHand orders a hand by suit then rank for display. The rules never
// depend on hand order.
func sortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return hand[i].Suit < hand[j].Suit
		}
		return hand[i].Rank < hand[j].Rank
	})
}

// SubmitBid records a bid of 0..13 for seat. Once all four seats have
// bid, play opens at the dealer's left.
func (g *Game) SubmitBid(seat Seat, value int) error {
	if seat < 0 || seat >= NumSeats {
		return fmt.Errorf("submit bid: seat %d: %w", seat, ErrBadSeat)
	}
	if g.Phase != PhaseBidding {
		return fmt.Errorf("submit bid in phase %s: %w", g.Phase, ErrWrongPhase)
	}
	if seat != g.Turn {
		return fmt.Errorf("submit bid: seat %d acted on seat %d's turn: %w", seat, g.Turn, ErrWrongTurn)
	}
	if value < 0 || value > 13 {
		return fmt.Errorf("submit bid: %d: %w", value, ErrInvalidBid)
	}

	v := value
	g.Players[seat].Bid = &v
	g.Turn = g.Turn.Next()
	if g.biddingDone() {
		g.Phase = PhasePlaying
		g.Turn = g.Dealer.Next()
	}
	return nil
}

func (g *Game) biddingDone() bool {
	for _, p := range g.Players {
		if p.Bid == nil {
			return false
		}
	}
	return true
}

// PlayCard validates and applies one play for seat. A rejected play
// leaves the state untouched. The fourth play of a trick does not resolve
// it; the caller must follow up with ResolveTrick, which lets the
// embedding layer pace display between the last play and trick cleanup.
func (g *Game) PlayCard(seat Seat, cardID string) error {
	if seat < 0 || seat >= NumSeats {
		return fmt.Errorf("play card: seat %d: %w", seat, ErrBadSeat)
	}
	if g.Phase != PhasePlaying {
		return fmt.Errorf("play card in phase %s: %w", g.Phase, ErrWrongPhase)
	}
	if len(g.Trick.Plays) >= NumSeats {
		return fmt.Errorf("play card: trick awaiting resolution: %w", ErrWrongTurn)
	}
	if seat != g.Turn {
		return fmt.Errorf("play card: seat %d acted on seat %d's turn: %w", seat, g.Turn, ErrWrongTurn)
	}
	card, ok := ParseCard(g.Variant, cardID)
	if !ok {
		return fmt.Errorf("play card: %q: %w", cardID, ErrBadCard)
	}
	p := g.Players[seat]
	if !handContains(p.Hand, card) {
		return fmt.Errorf("play card: %s: %w", card, ErrCardNotHeld)
	}
	legal := LegalPlays(p.Hand, g.Trick.LedSuit, g.SpadesBroken)
	if !handContains(legal, card) {
		return fmt.Errorf("play card: %s: %w", card, ErrIllegalPlay)
	}

	p.Hand = removeCard(p.Hand, card)
	if g.Trick.LedSuit == nil {
		led := card.Suit
		if led == SuitJoker {
			// A joker lead is a trump lead.
			led = Spades
		}
		g.Trick.LedSuit = &led
	}
	if card.IsTrump() {
		g.SpadesBroken = true
	}
	g.Trick.Plays = append(g.Trick.Plays, Play{Seat: seat, Card: card})
	if len(g.Trick.Plays) < NumSeats {
		g.Turn = g.Turn.Next()
	}
	return nil
}

// TrickReady reports whether the current trick has all four plays and is
// waiting for ResolveTrick.
func (g *Game) TrickReady() bool {
	return g.Phase == PhasePlaying && len(g.Trick.Plays) == NumSeats
}

// ResolveTrick finishes the current trick: records the winner, appends
// the trick to history, and either opens the next trick led by the winner
// or, after the 13th trick, scores the hand. Calling it without exactly
// four plays is a programmer error, not a user-facing rejection.
func (g *Game) ResolveTrick() TrickResult {
	if g.Phase != PhasePlaying || len(g.Trick.Plays) != NumSeats || g.Trick.LedSuit == nil {
		panic(fmt.Sprintf("engine: ResolveTrick with %d plays in phase %s", len(g.Trick.Plays), g.Phase))
	}

	winner := TrickWinner(g.Trick.Plays, *g.Trick.LedSuit)
	g.Trick.Winner = &winner
	g.Players[winner].Tricks++
	g.History = append(g.History, g.Trick)

	res := TrickResult{Winner: winner, TrickNumber: g.Trick.Number}
	if g.Trick.Number < 13 {
		g.Trick = Trick{Number: g.Trick.Number + 1}
		g.Turn = winner
		return res
	}

	summary := g.scoreHand()
	res.HandDone = true
	res.Hand = &summary
	if g.Teams[0].Score >= g.TargetScore || g.Teams[1].Score >= g.TargetScore {
		g.Phase = PhaseGameOver
		res.GameOver = true
		return res
	}
	g.Dealer = g.Dealer.Next()
	g.dealHand()
	return res
}

// scoreHand runs both partnerships through the scoring engine and
// replaces the team states with the results.
func (g *Game) scoreHand() HandSummary {
	summary := HandSummary{HandNumber: g.HandNumber}
	for i := Seat(0); i < NumSeats; i++ {
		summary.Bids[i] = *g.Players[i].Bid
		summary.Tricks[i] = g.Players[i].Tricks
	}
	for team := 0; team < 2; team++ {
		seatA := Seat(team)
		seatB := seatA.Partner()
		in := TeamHandInput{
			Bids:   [2]int{summary.Bids[seatA], summary.Bids[seatB]},
			Tricks: [2]int{summary.Tricks[seatA], summary.Tricks[seatB]},
		}
		next, breakdown := ScoreHand(in, g.Teams[team])
		g.Teams[team] = next
		summary.Teams[team] = breakdown
		summary.Totals[team] = next
	}
	g.Summaries = append(g.Summaries, summary)
	return summary
}

// Winner returns the winning team index once the match is over. A dead
// tie at the target goes to the partnership carrying fewer bags.
func (g *Game) Winner() (int, bool) {
	if g.Phase != PhaseGameOver {
		return 0, false
	}
	switch {
	case g.Teams[0].Score != g.Teams[1].Score:
		if g.Teams[0].Score > g.Teams[1].Score {
			return 0, true
		}
		return 1, true
	case g.Teams[0].Bags <= g.Teams[1].Bags:
		return 0, true
	default:
		return 1, true
	}
}

func handContains(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

func removeCard(hand []Card, card Card) []Card {
	for i, c := range hand {
		if c == card {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}
