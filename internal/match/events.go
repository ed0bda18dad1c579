// internal/match/events.go
package match

import (
	"github.com/spadearena/spades/internal/engine"
)

// EventType is an enum-like type for broadcasting match progress.
type EventType string

const (
	EventHandDealt   EventType = "hand_dealt"   // public: new hand, dealer, hand number
	EventPrivateHand EventType = "private_hand" // per-seat: the dealt cards
	EventPlayerBid   EventType = "player_bid"
	EventPlayerPlay  EventType = "player_play"
	EventTrickWon    EventType = "trick_won"
	EventHandScored  EventType = "hand_scored"
	EventGameEnd     EventType = "game_end"
	EventFallback    EventType = "agent_fallback" // agent decision replaced by default action
)

// Event is broadcast to spectators in a consistent format. Only public
// data goes through BroadcastFn; per-seat hands travel via
// BroadcastSeatFn with EventPrivateHand.
type Event struct {
	Type EventType    `json:"type"`
	Seat *engine.Seat `json:"seat,omitempty"`
	Bid  *int         `json:"bid,omitempty"`
	Card string       `json:"card,omitempty"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}

func seatPtr(s engine.Seat) *engine.Seat { return &s }

func intPtr(v int) *int { return &v }
