// internal/engine/observation.go
package engine

// SeatView is the public, always-visible information about one seat.
type SeatView struct {
	Seat   Seat   `json:"seat"`
	Name   string `json:"name"`
	Human  bool   `json:"human"`
	Bid    *int   `json:"bid"`
	Tricks int    `json:"tricks"`
}

// TrickView is one play of the current trick as card identifiers.
type TrickView struct {
	Seat Seat   `json:"seat"`
	Card string `json:"card"`
}

// Observation is the seat-scoped projection of game state handed to an
// agent. It contains the requesting seat's own hand and only public
// information about everyone else; another seat's hand can never be
// obtained through it.
type Observation struct {
	Seat        Seat         `json:"seat"`
	PartnerSeat Seat         `json:"partnerSeat"`
	Phase       Phase        `json:"phase"`
	Variant     Variant      `json:"variant"`
	HandNumber  int          `json:"handNumber"`
	Dealer      Seat         `json:"dealer"`
	Turn        Seat         `json:"turn"`
	YourTurn    bool         `json:"yourTurn"`
	TargetScore int          `json:"targetScore"`
	Teams       [2]TeamScore `json:"teams"`

	Hand []string `json:"hand"` // the requesting seat's cards only

	Seats [NumSeats]SeatView `json:"seats"`

	// Playing-phase public trick state.
	SpadesBroken bool          `json:"spadesBroken"`
	LedSuit      *string       `json:"ledSuit,omitempty"`
	TrickNumber  int           `json:"trickNumber"`
	CurrentTrick []TrickView   `json:"currentTrick,omitempty"`
	TrickHistory [][]TrickView `json:"trickHistory,omitempty"`

	// LegalPlays is populated only when it is the requesting seat's turn
	// in the playing phase.
	LegalPlays []string `json:"legalPlays,omitempty"`
}

// Observe builds the read-only projection for seat. Panics on an invalid
// seat: observations are requested by the embedding layer, not by
// untrusted input.
func (g *Game) Observe(seat Seat) Observation {
	if seat < 0 || seat >= NumSeats {
		panic("engine: Observe with invalid seat")
	}
	obs := Observation{
		Seat:        seat,
		PartnerSeat: seat.Partner(),
		Phase:       g.Phase,
		Variant:     g.Variant,
		HandNumber:  g.HandNumber,
		Dealer:      g.Dealer,
		Turn:        g.Turn,
		YourTurn:    g.Phase != PhaseGameOver && g.Turn == seat,
		TargetScore: g.TargetScore,
		Teams:       g.Teams,
	}

	p := g.Players[seat]
	obs.Hand = cardIDs(p.Hand)

	for i := Seat(0); i < NumSeats; i++ {
		pl := g.Players[i]
		obs.Seats[i] = SeatView{
			Seat:   i,
			Name:   pl.Name,
			Human:  pl.Human,
			Bid:    copyBid(pl.Bid),
			Tricks: pl.Tricks,
		}
	}

	if g.Phase != PhasePlaying {
		return obs
	}

	obs.SpadesBroken = g.SpadesBroken
	obs.TrickNumber = g.Trick.Number
	if g.Trick.LedSuit != nil {
		led := g.Trick.LedSuit.String()
		obs.LedSuit = &led
	}
	obs.CurrentTrick = trickViews(g.Trick)
	for _, t := range g.History {
		obs.TrickHistory = append(obs.TrickHistory, trickViews(t))
	}
	if obs.YourTurn && len(g.Trick.Plays) < NumSeats {
		obs.LegalPlays = cardIDs(LegalPlays(p.Hand, g.Trick.LedSuit, g.SpadesBroken))
	}
	return obs
}

func trickViews(t Trick) []TrickView {
	out := make([]TrickView, 0, len(t.Plays))
	for _, p := range t.Plays {
		out = append(out, TrickView{Seat: p.Seat, Card: p.Card.ID()})
	}
	return out
}

func cardIDs(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID())
	}
	return out
}

func copyBid(b *int) *int {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
