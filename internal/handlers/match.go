// internal/handlers/match.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spadearena/spades/internal/agent"
	"github.com/spadearena/spades/internal/auth"
	"github.com/spadearena/spades/internal/cache"
	"github.com/spadearena/spades/internal/database"
	"github.com/spadearena/spades/internal/engine"
	"github.com/spadearena/spades/internal/match"
)

// recordTimeout bounds the persistence work after a match finishes.
const recordTimeout = 10 * time.Second

// CreateMatchRequest is the POST body for /match/create.
type CreateMatchRequest struct {
	Agents      [engine.NumSeats]string `json:"agents"`
	Names       [engine.NumSeats]string `json:"names"`
	TargetScore int                     `json:"targetScore"`
	Variant     string                  `json:"variant"`
	Seed        int64                   `json:"seed"`
	TurnTimeout int                     `json:"turnTimeoutSec"`
}

// CreateMatchResponse returns the new match id and a spectator token
// for its WebSocket feed.
type CreateMatchResponse struct {
	ID             string `json:"id"`
	SpectatorToken string `json:"spectatorToken"`
}

// CreateMatchHandler builds four agents, spins up a runner, and starts
// the match in the background.
func CreateMatchHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		var req CreateMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("bad request body: %v", err), http.StatusBadRequest)
			return
		}
		if req.TargetScore == 0 {
			req.TargetScore = 500
		}

		var agents [engine.NumSeats]agent.Agent
		var names [engine.NumSeats]string
		for i, kind := range req.Agents {
			if kind == "" {
				kind = "random"
			}
			a, err := agent.New(kind, req.Seed+int64(i)+1)
			if err != nil {
				http.Error(w, fmt.Sprintf("seat %d: %v", i, err), http.StatusBadRequest)
				return
			}
			agents[i] = a
			if names[i] = req.Names[i]; names[i] == "" {
				names[i] = fmt.Sprintf("%s-%d", kind, i)
			}
		}

		runner, err := match.NewRunner(match.Config{
			Agents:      agents,
			Names:       names,
			TargetScore: req.TargetScore,
			Variant:     engine.Variant(req.Variant),
			Seed:        req.Seed,
			TurnTimeout: time.Duration(req.TurnTimeout) * time.Second,
			Logger:      s.Logger,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.Matches.Add(runner)
		s.launch(runner)

		token, err := auth.CreateSpectatorToken(runner.ID.String())
		if err != nil {
			s.Logger.Errorf("create spectator token: %v", err)
			http.Error(w, "failed to issue spectator token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, CreateMatchResponse{
			ID:             runner.ID.String(),
			SpectatorToken: token,
		})
	}
}

// ListMatchesHandler returns a public snapshot of every registered match.
func ListMatchesHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Matches.List())
	}
}

// LeaderboardHandler serves the aggregated standings, cache-aside
// through Redis.
func LeaderboardHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !database.Connected() {
			http.Error(w, "leaderboard storage not configured", http.StatusServiceUnavailable)
			return
		}
		ctx := r.Context()

		var standings []database.Standing
		hit, err := cache.GetStandings(ctx, &standings)
		if err != nil {
			s.Logger.Warnf("standings cache read: %v", err)
		}
		if !hit {
			standings, err = database.Standings(ctx, 50)
			if err != nil {
				s.Logger.Errorf("query standings: %v", err)
				http.Error(w, "failed to load standings", http.StatusInternalServerError)
				return
			}
			if err := cache.SetStandings(ctx, standings); err != nil {
				s.Logger.Warnf("standings cache write: %v", err)
			}
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

// HeadToHeadHandler serves the matchup record between two agent names:
// /leaderboard/h2h?a=heuristic-0&b=random-1
func HeadToHeadHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !database.Connected() {
			http.Error(w, "leaderboard storage not configured", http.StatusServiceUnavailable)
			return
		}
		nameA := r.URL.Query().Get("a")
		nameB := r.URL.Query().Get("b")
		if nameA == "" || nameB == "" {
			http.Error(w, "query params a and b required", http.StatusBadRequest)
			return
		}
		m, err := database.HeadToHead(r.Context(), nameA, nameB)
		if err != nil {
			s.Logger.Errorf("query head to head: %v", err)
			http.Error(w, "failed to load matchup", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// AgentsHandler lists the registered agent kinds.
func AgentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, agent.Names())
	}
}
