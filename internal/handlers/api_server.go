// internal/handlers/api_server.go
package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spadearena/spades/internal/cache"
	"github.com/spadearena/spades/internal/database"
	"github.com/spadearena/spades/internal/match"
)

// Server is the high-level struct that owns the match store and the
// per-match spectator feeds.
type Server struct {
	Logger  *logrus.Logger
	Matches *match.Store

	mu    sync.Mutex
	feeds map[uuid.UUID]*feed
}

func NewServer(logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		Logger:  logger,
		Matches: match.NewStore(),
		feeds:   make(map[uuid.UUID]*feed),
	}
}

// feedFor returns (creating if needed) the event feed for a match.
func (s *Server) feedFor(id uuid.UUID) *feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feeds[id]
	if !ok {
		f = newFeed()
		s.feeds[id] = f
	}
	return f
}

// launch starts the runner in its own goroutine and persists the result
// when it completes.
func (s *Server) launch(r *match.Runner) {
	f := s.feedFor(r.ID)
	r.BroadcastFn = f.publish

	go func() {
		result, err := r.Run(context.Background())
		if err != nil {
			s.Logger.WithField("match", r.ID).Errorf("match aborted: %v", err)
			return
		}
		s.recordResult(result)
	}()
}

func (s *Server) recordResult(result match.Result) {
	if !database.Connected() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := database.RecordMatchResult(ctx, result); err != nil {
		s.Logger.WithField("match", result.MatchID).Errorf("record result: %v", err)
		return
	}
	if err := cache.InvalidateStandings(ctx); err != nil {
		s.Logger.Warnf("invalidate standings cache: %v", err)
	}
}
