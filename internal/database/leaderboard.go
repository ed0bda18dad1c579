// internal/database/leaderboard.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spadearena/spades/internal/engine"
	"github.com/spadearena/spades/internal/match"
)

// Standing is one leaderboard row, aggregated per agent name across all
// recorded matches.
type Standing struct {
	Name    string `json:"name"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Matches int    `json:"matches"`
	Points  int    `json:"points"` // cumulative final team score the agent sat on
}

// Matchup is a head-to-head record between two agent names seated on
// opposing teams.
type Matchup struct {
	NameA string `json:"nameA"`
	NameB string `json:"nameB"`
	WinsA int    `json:"winsA"`
	WinsB int    `json:"winsB"`
}

// RecordMatchResult persists a finished match: one row in matches, one
// row per seat in match_seats. Per-trick history is deliberately not
// stored.
func RecordMatchResult(ctx context.Context, res match.Result) error {
	if DB == nil {
		return fmt.Errorf("record match %s: database not connected", res.MatchID)
	}
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		insertMatch := `
			INSERT INTO matches (id, winning_team, team0_score, team0_bags, team1_score, team1_bags, hands)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, insertMatch, res.MatchID, res.WinningTeam,
			res.Teams[0].Score, res.Teams[0].Bags,
			res.Teams[1].Score, res.Teams[1].Bags,
			len(res.Hands)); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}

		insertSeat := `
			INSERT INTO match_seats (match_id, seat, agent_name, team, score, did_win)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (match_id, seat) DO NOTHING
		`
		for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
			team := seat.Team()
			if _, err := tx.Exec(ctx, insertSeat, res.MatchID, int(seat), res.Names[seat],
				team, res.Teams[team].Score, team == res.WinningTeam); err != nil {
				return fmt.Errorf("insert seat %d: %w", seat, err)
			}
		}
		return nil
	})
}

// Standings aggregates the leaderboard, best win rate first.
func Standings(ctx context.Context, limit int) ([]Standing, error) {
	if DB == nil {
		return nil, fmt.Errorf("standings: database not connected")
	}
	if limit <= 0 {
		limit = 50
	}
	q := `
		SELECT agent_name,
		       COUNT(*) FILTER (WHERE did_win)     AS wins,
		       COUNT(*) FILTER (WHERE NOT did_win) AS losses,
		       COUNT(*)                            AS matches,
		       COALESCE(SUM(score), 0)             AS points
		FROM match_seats
		GROUP BY agent_name
		ORDER BY COUNT(*) FILTER (WHERE did_win)::float / COUNT(*) DESC, points DESC
		LIMIT $1
	`
	rows, err := DB.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.Name, &s.Wins, &s.Losses, &s.Matches, &s.Points); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// HeadToHead counts wins between two agent names when they sat on
// opposing teams in the same match.
func HeadToHead(ctx context.Context, nameA, nameB string) (Matchup, error) {
	m := Matchup{NameA: nameA, NameB: nameB}
	if DB == nil {
		return m, fmt.Errorf("head to head: database not connected")
	}
	q := `
		SELECT COUNT(*) FILTER (WHERE a.did_win),
		       COUNT(*) FILTER (WHERE b.did_win)
		FROM match_seats a
		JOIN match_seats b
		  ON a.match_id = b.match_id AND a.team <> b.team
		WHERE a.agent_name = $1 AND b.agent_name = $2
	`
	if err := DB.QueryRow(ctx, q, nameA, nameB).Scan(&m.WinsA, &m.WinsB); err != nil {
		return m, fmt.Errorf("query head to head: %w", err)
	}
	return m, nil
}

// EnsureSchema creates the result tables if they do not exist.
func EnsureSchema(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("ensure schema: database not connected")
	}
	ddl := `
		CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY,
			winning_team INT NOT NULL,
			team0_score INT NOT NULL,
			team0_bags INT NOT NULL,
			team1_score INT NOT NULL,
			team1_bags INT NOT NULL,
			hands INT NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS match_seats (
			match_id UUID NOT NULL REFERENCES matches(id),
			seat INT NOT NULL,
			agent_name TEXT NOT NULL,
			team INT NOT NULL,
			score INT NOT NULL,
			did_win BOOLEAN NOT NULL,
			PRIMARY KEY (match_id, seat)
		);
	`
	if _, err := DB.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
