// internal/match/store.go
package match

import (
	"sync"

	"github.com/google/uuid"
)

// Store is an in-memory registry of live match runners.
type Store struct {
	mu      sync.Mutex
	runners map[uuid.UUID]*Runner
}

func NewStore() *Store {
	return &Store{runners: make(map[uuid.UUID]*Runner)}
}

func (s *Store) Add(r *Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners[r.ID] = r
}

func (s *Store) Get(id uuid.UUID) (*Runner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runners[id]
	return r, ok
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runners, id)
}

// List returns a snapshot of every registered match.
func (s *Store) List() []Snapshot {
	s.mu.Lock()
	runners := make([]*Runner, 0, len(s.runners))
	for _, r := range s.runners {
		runners = append(runners, r)
	}
	s.mu.Unlock()

	out := make([]Snapshot, 0, len(runners))
	for _, r := range runners {
		out = append(out, r.Snapshot())
	}
	return out
}
