package streamtest

import (
	"context"
	"sync"

	"github.com/skillsenselab/streamkit/stream"
)

// Probe is a slice-backed source that records how far it was consumed and
// when its subscriber cancelled. It checks for cancellation before every
// emission and once more after the last, so a cancel issued from inside a
// downstream callback is observed immediately.
type Probe[T any] struct {
	items []T

	mu             sync.Mutex
	emitted        int
	cancelledAfter int
}

// NewProbe returns a probe that emits items in order.
func NewProbe[T any](items ...T) *Probe[T] {
	return &Probe[T]{items: items, cancelledAfter: -1}
}

// Observable returns the instrumented source.
func (p *Probe[T]) Observable() stream.Observable[T] {
	return stream.New(func(ctx context.Context, s *stream.Subscriber[T]) {
		for _, v := range p.items {
			if s.Closed() {
				p.markCancelled()
				return
			}
			if ctx.Err() != nil {
				s.Error(ctx.Err())
				return
			}
			p.mu.Lock()
			p.emitted++
			p.mu.Unlock()
			s.Next(v)
		}
		if s.Closed() {
			p.markCancelled()
			return
		}
		s.Complete()
	})
}

// Emitted returns how many values the probe pushed to its subscriber.
func (p *Probe[T]) Emitted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.emitted
}

// CancelledAfter returns the number of values emitted before the probe
// observed cancellation, or -1 if it never did.
func (p *Probe[T]) CancelledAfter() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelledAfter
}

func (p *Probe[T]) markCancelled() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelledAfter < 0 {
		p.cancelledAfter = p.emitted
	}
}
