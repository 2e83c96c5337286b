package tui

import (
	"context"
	"sync"

	"github.com/ctt011/folio/internal/gallery"
)

// Dispatcher accepts gallery events from the UI without blocking it.
type Dispatcher interface {
	Dispatch(ev gallery.Event)
}

// queue preserves event order between the UI goroutine and the session.
// Dispatch never blocks, so the session may publish into the program while
// the program is queueing more input.
type queue struct {
	mu      sync.Mutex
	pending []gallery.Event
	wake    chan struct{}
}

func newQueue() *queue {
	return &queue{wake: make(chan struct{}, 1)}
}

func (q *queue) Dispatch(ev gallery.Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pump forwards queued events to s in order until ctx ends or the session
// closes.
func (q *queue) pump(ctx context.Context, s *gallery.Session) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}

		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, ev := range batch {
			if err := s.Dispatch(ctx, ev); err != nil {
				return err
			}
		}
	}
}
