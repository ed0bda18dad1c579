// internal/handlers/feed.go
package handlers

import (
	"sync"

	"github.com/spadearena/spades/internal/match"
)

// maxFeedBuffer bounds how many events a feed replays to late joiners.
const maxFeedBuffer = 8192

// feed fans one match's public events out to its spectators. Events are
// buffered so a spectator joining mid-match sees the whole story.
type feed struct {
	mu     sync.Mutex
	buffer []match.Event
	subs   map[chan match.Event]struct{}
}

func newFeed() *feed {
	return &feed{subs: make(map[chan match.Event]struct{})}
}

// publish appends to the replay buffer and fans out without blocking:
// a spectator that cannot keep up loses events rather than stalling the
// match loop.
func (f *feed) publish(ev match.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.buffer) < maxFeedBuffer {
		f.buffer = append(f.buffer, ev)
	}
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// subscribe registers a listener and returns the replay of everything
// published so far.
func (f *feed) subscribe() (replay []match.Event, ch chan match.Event) {
	ch = make(chan match.Event, 256)
	f.mu.Lock()
	defer f.mu.Unlock()
	replay = append([]match.Event(nil), f.buffer...)
	f.subs[ch] = struct{}{}
	return replay, ch
}

func (f *feed) unsubscribe(ch chan match.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, ch)
}
