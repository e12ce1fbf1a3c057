package stream

import (
	"context"
	"fmt"

	"github.com/skillsenselab/streamkit/errors"
)

// Map transforms each value using fn. An error from fn cancels the
// upstream subscription and terminates the stream.
func Map[I, O any](fn func(context.Context, I) (O, error)) Operator[I, O] {
	return func(src Observable[I]) Observable[O] {
		return New(func(ctx context.Context, dst *Subscriber[O]) {
			up := NewSubscription()
			dst.Add(up.Unsubscribe)
			src.SubscribeWith(ctx, up, Callbacks[I]{
				OnNext: func(v I) {
					out, err := fn(ctx, v)
					if err != nil {
						up.Unsubscribe()
						dst.Error(err)
						return
					}
					dst.Next(out)
				},
				OnComplete: dst.Complete,
				OnError:    dst.Error,
			})
		})
	}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](fn func(T) bool) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return New(func(ctx context.Context, dst *Subscriber[T]) {
			up := NewSubscription()
			dst.Add(up.Unsubscribe)
			src.SubscribeWith(ctx, up, Callbacks[T]{
				OnNext: func(v T) {
					if fn(v) {
						dst.Next(v)
					}
				},
				OnComplete: dst.Complete,
				OnError:    dst.Error,
			})
		})
	}
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged. An error from fn cancels the upstream subscription
// and terminates the stream. Use for logging, metrics, or mid-stream
// publishing.
func Tap[T any](fn func(context.Context, T) error) Operator[T, T] {
	return func(src Observable[T]) Observable[T] {
		return New(func(ctx context.Context, dst *Subscriber[T]) {
			up := NewSubscription()
			dst.Add(up.Unsubscribe)
			src.SubscribeWith(ctx, up, Callbacks[T]{
				OnNext: func(v T) {
					if err := fn(ctx, v); err != nil {
						up.Unsubscribe()
						dst.Error(err)
						return
					}
					dst.Next(v)
				},
				OnComplete: dst.Complete,
				OnError:    dst.Error,
			})
		})
	}
}

// Take forwards the first n values, cancels the upstream subscription,
// and completes. Take(0) completes without subscribing upstream. A
// negative n panics at construction.
func Take[T any](n int) Operator[T, T] {
	if n < 0 {
		panic(errors.OutOfRange(fmt.Sprintf("stream: take count must be non-negative, got %d", n)))
	}
	return func(src Observable[T]) Observable[T] {
		return New(func(ctx context.Context, dst *Subscriber[T]) {
			if n == 0 {
				dst.Complete()
				return
			}
			taken := 0
			up := NewSubscription()
			dst.Add(up.Unsubscribe)
			src.SubscribeWith(ctx, up, Callbacks[T]{
				OnNext: func(v T) {
					taken++
					if taken < n {
						dst.Next(v)
						return
					}
					up.Unsubscribe()
					dst.Next(v)
					dst.Complete()
				},
				OnComplete: dst.Complete,
				OnError:    dst.Error,
			})
		})
	}
}
