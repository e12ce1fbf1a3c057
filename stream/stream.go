package stream

import (
	"context"
	"sync"
	"sync/atomic"
)

// Observer consumes the notifications of one subscription: zero or more
// Next values followed by exactly one Complete or Error.
type Observer[T any] interface {
	Next(value T)
	Complete()
	Error(err error)
}

// Callbacks adapts plain functions to the Observer interface.
// Nil callbacks are ignored.
type Callbacks[T any] struct {
	OnNext     func(value T)
	OnComplete func()
	OnError    func(err error)
}

func (c Callbacks[T]) Next(value T) {
	if c.OnNext != nil {
		c.OnNext(value)
	}
}

func (c Callbacks[T]) Complete() {
	if c.OnComplete != nil {
		c.OnComplete()
	}
}

func (c Callbacks[T]) Error(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

// Subscription is the cancellation handle for one activation of an
// observable. Closing it stops further notifications and runs registered
// teardowns exactly once; closing again is a no-op.
type Subscription struct {
	mu        sync.Mutex
	closed    atomic.Bool
	done      chan struct{}
	teardowns []func()
}

// NewSubscription creates an open subscription handle. Operators create
// the handle before activating an upstream producer so their callbacks can
// cancel it even when the producer emits synchronously during subscribe.
func NewSubscription() *Subscription {
	return &Subscription{done: make(chan struct{})}
}

// Unsubscribe cancels the subscription. The first call runs registered
// teardowns in reverse registration order; later calls have no effect.
func (s *Subscription) Unsubscribe() { s.close() }

// Closed reports whether the subscription has terminated or been cancelled.
func (s *Subscription) Closed() bool { return s.closed.Load() }

// Done returns a channel that is closed when the subscription ends.
// Producers that block (channels, sockets) select on it to stop early.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Add registers a teardown to run when the subscription ends. If the
// subscription is already closed the teardown runs immediately.
func (s *Subscription) Add(teardown func()) {
	if teardown == nil {
		return
	}
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		teardown()
		return
	}
	s.teardowns = append(s.teardowns, teardown)
	s.mu.Unlock()
}

// close marks the subscription closed and runs teardowns outside the lock.
// Returns true for the call that performed the close.
func (s *Subscription) close() bool {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false
	}
	s.closed.Store(true)
	teardowns := s.teardowns
	s.teardowns = nil
	close(s.done)
	s.mu.Unlock()

	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
	return true
}

// Subscriber delivers notifications to a downstream observer under the
// substrate contract: nothing is delivered after the subscription closes,
// at most one terminal notification is delivered, and a terminal closes
// the subscription. Teardowns run before the downstream terminal callback
// so upstream resources are always released first.
type Subscriber[T any] struct {
	sub *Subscription
	obs Observer[T]
}

// NewSubscriber binds a subscription handle to a downstream observer.
func NewSubscriber[T any](sub *Subscription, obs Observer[T]) *Subscriber[T] {
	return &Subscriber[T]{sub: sub, obs: obs}
}

// Next forwards a value downstream unless the subscription has ended.
func (s *Subscriber[T]) Next(value T) {
	if s.sub.Closed() {
		return
	}
	s.obs.Next(value)
}

// Complete ends the stream normally. Only the first terminal notification
// is delivered; a subscription cancelled from outside delivers none.
func (s *Subscriber[T]) Complete() {
	if s.sub.close() {
		s.obs.Complete()
	}
}

// Error ends the stream with err under the same single-terminal rule.
func (s *Subscriber[T]) Error(err error) {
	if s.sub.close() {
		s.obs.Error(err)
	}
}

// Closed reports whether delivery has ended.
func (s *Subscriber[T]) Closed() bool { return s.sub.Closed() }

// Done returns the underlying subscription's done channel.
func (s *Subscriber[T]) Done() <-chan struct{} { return s.sub.Done() }

// Add registers a teardown with the underlying subscription.
func (s *Subscriber[T]) Add(teardown func()) { s.sub.Add(teardown) }

// Observable is a lazy push stream. Subscribing runs the producer, which
// delivers notifications through the provided Subscriber. The zero value
// is an empty stream.
type Observable[T any] struct {
	producer func(ctx context.Context, s *Subscriber[T])
}

// New creates an observable from a producer function. The producer runs
// once per subscription, synchronously on the subscriber's goroutine, and
// must deliver notifications serially with at most one terminal.
func New[T any](producer func(ctx context.Context, s *Subscriber[T])) Observable[T] {
	return Observable[T]{producer: producer}
}

// Subscribe activates the observable for one observer and returns the
// cancellation handle. The handle exists before the producer runs, so even
// a producer that emits synchronously can be cancelled from a callback.
func (o Observable[T]) Subscribe(ctx context.Context, obs Observer[T]) *Subscription {
	sub := NewSubscription()
	o.SubscribeWith(ctx, sub, obs)
	return sub
}

// SubscribeWith activates the observable against a caller-provided handle.
// Operators use it to capture the upstream cancellation handle before any
// notification can fire.
func (o Observable[T]) SubscribeWith(ctx context.Context, sub *Subscription, obs Observer[T]) {
	s := NewSubscriber(sub, obs)
	if o.producer == nil {
		s.Complete()
		return
	}
	o.producer(ctx, s)
}

// Operator transforms one observable into another. Operator values
// returned by the factories in this package are immutable and reusable:
// applying one allocates per-subscription state only when the resulting
// observable is subscribed.
type Operator[I, O any] func(Observable[I]) Observable[O]

// Pipe applies same-type operators to src from left to right.
// Type-changing operators apply directly: Map(fn)(src).
func Pipe[T any](src Observable[T], ops ...Operator[T, T]) Observable[T] {
	out := src
	for _, op := range ops {
		out = op(out)
	}
	return out
}
