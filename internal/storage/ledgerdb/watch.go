package ledgerdb

import (
	"time"

	"github.com/centsible/centsible/internal/models"
)

// watchBuffer is the per-subscriber channel depth. Events beyond it are
// dropped rather than blocking a committing writer.
const watchBuffer = 64

type watcher struct {
	userID string
	ch     chan models.ChangeEvent
}

// Watch subscribes to committed changes for a user. The cancel func releases
// the subscription and closes the channel. Events are identity-only;
// subscribers re-query for current state.
func (s *Store) Watch(userID string) (<-chan models.ChangeEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan models.ChangeEvent, watchBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.watchers[id] = &watcher{userID: userID, ch: ch}

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w.ch)
		}
	}
	return ch, cancel
}

// publish fans out events to matching subscribers after a commit. Sends are
// non-blocking: a slow subscriber loses events, never stalls a writer.
func (s *Store) publish(events ...models.ChangeEvent) {
	if len(events) == 0 {
		return
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ev := range events {
		if ev.At.IsZero() {
			ev.At = now
		}
		for _, w := range s.watchers {
			if w.userID != ev.UserID {
				continue
			}
			select {
			case w.ch <- ev:
			default:
				s.logger.Warn().
					Str("user_id", ev.UserID).
					Str("collection", string(ev.Collection)).
					Msg("Watcher buffer full, event dropped")
			}
		}
	}
}
