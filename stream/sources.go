package stream

import "context"

// FromSlice creates an observable that emits each element of items in
// order, then completes.
func FromSlice[T any](items []T) Observable[T] {
	return New(func(ctx context.Context, s *Subscriber[T]) {
		for _, v := range items {
			if s.Closed() {
				return
			}
			if ctx.Err() != nil {
				s.Error(ctx.Err())
				return
			}
			s.Next(v)
		}
		s.Complete()
	})
}

// Generate creates an observable that emits gen(0) .. gen(count-1), then
// completes.
func Generate[T any](count int, gen func(i int) T) Observable[T] {
	return New(func(ctx context.Context, s *Subscriber[T]) {
		for i := 0; i < count; i++ {
			if s.Closed() {
				return
			}
			if ctx.Err() != nil {
				s.Error(ctx.Err())
				return
			}
			s.Next(gen(i))
		}
		s.Complete()
	})
}

// FromChannel creates an observable that emits every value received from
// ch and completes when ch is closed. The producer blocks on the channel,
// so subscribe from a goroutine you are willing to park; it stops early
// when the subscription is cancelled or the context ends.
func FromChannel[T any](ch <-chan T) Observable[T] {
	return New(func(ctx context.Context, s *Subscriber[T]) {
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					s.Complete()
					return
				}
				s.Next(v)
			case <-ctx.Done():
				s.Error(ctx.Err())
				return
			case <-s.Done():
				return
			}
		}
	})
}

// Empty creates an observable that completes without emitting.
func Empty[T any]() Observable[T] {
	return New(func(_ context.Context, s *Subscriber[T]) {
		s.Complete()
	})
}

// Fail creates an observable that terminates with err without emitting.
func Fail[T any](err error) Observable[T] {
	return New(func(_ context.Context, s *Subscriber[T]) {
		s.Error(err)
	})
}
