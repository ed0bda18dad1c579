// internal/engine/scoring.go
package engine

// TeamScore is a partnership's cumulative score and bag count. Score is
// unbounded and may go negative; Bags is kept in [0,9] by ScoreHand.
type TeamScore struct {
	Score int `json:"score"`
	Bags  int `json:"bags"`
}

// TeamHandInput is one partnership's final bids and trick counts for a
// completed hand, in partner order.
type TeamHandInput struct {
	Bids   [2]int
	Tricks [2]int
}

// HandBreakdown itemizes how a partnership's score changed for one hand.
type HandBreakdown struct {
	TeamBid    int  `json:"teamBid"`    // summed non-nil bids
	TeamTricks int  `json:"teamTricks"` // tricks won by non-nil bidders
	Made       bool `json:"made"`       // team bid reached (true when TeamBid == 0)
	NilBonus   int  `json:"nilBonus"`   // +-100 per nil bidder
	BidPoints  int  `json:"bidPoints"`  // bid*10 made/set points plus overtricks
	BagsEarned int  `json:"bagsEarned"` // overtricks this hand
	BagPenalty int  `json:"bagPenalty"` // points lost to bag penalties this hand
	Points     int  `json:"points"`     // net score change
}

// ScoreHand computes a partnership's new cumulative score and bag count
// from one completed hand. Pure: prev is not mutated.
//
// Nil bids resolve per player on that player's own trick count, then the
// non-nil bids and tricks are pooled into a team contract. Every ten
// accumulated bags costs 100 points; the loop handles carries that cross
// the threshold more than once.
func ScoreHand(in TeamHandInput, prev TeamScore) (TeamScore, HandBreakdown) {
	var b HandBreakdown
	for i := 0; i < 2; i++ {
		if in.Bids[i] == 0 {
			if in.Tricks[i] == 0 {
				b.NilBonus += 100
			} else {
				b.NilBonus -= 100
			}
			continue
		}
		b.TeamBid += in.Bids[i]
		b.TeamTricks += in.Tricks[i]
	}

	next := prev
	if b.TeamBid > 0 {
		if b.TeamTricks >= b.TeamBid {
			b.Made = true
			b.BagsEarned = b.TeamTricks - b.TeamBid
			b.BidPoints = b.TeamBid*10 + b.BagsEarned
			next.Bags += b.BagsEarned
		} else {
			b.BidPoints = -b.TeamBid * 10
		}
	} else {
		b.Made = true
	}

	next.Score += b.NilBonus + b.BidPoints
	for next.Bags >= 10 {
		next.Score -= 100
		next.Bags -= 10
		b.BagPenalty += 100
	}
	b.Points = next.Score - prev.Score
	return next, b
}
