package stream

import (
	"context"
	"fmt"

	"github.com/skillsenselab/streamkit/errors"
)

// ElementAt emits only the value at the given zero-based index, cancels
// the upstream subscription, and completes. If the source completes
// before reaching index, the stream fails with errors.OutOfRange.
// A negative index panics at construction.
func ElementAt[T any](index int) Operator[T, T] {
	var zero T
	return elementAt(index, zero, false)
}

// ElementAtOrDefault behaves like ElementAt, but when the source is too
// short it emits fallback and completes instead of failing. The fallback
// is emitted as-is, including when it is the zero value for T.
func ElementAtOrDefault[T any](index int, fallback T) Operator[T, T] {
	return elementAt(index, fallback, true)
}

func elementAt[T any](index int, fallback T, hasFallback bool) Operator[T, T] {
	if index < 0 {
		panic(errors.OutOfRange(fmt.Sprintf("stream: element index must be non-negative, got %d", index)))
	}
	return func(src Observable[T]) Observable[T] {
		return New(func(ctx context.Context, dst *Subscriber[T]) {
			seen := 0
			up := NewSubscription()
			dst.Add(up.Unsubscribe)
			src.SubscribeWith(ctx, up, Callbacks[T]{
				OnNext: func(v T) {
					if seen != index {
						seen++
						return
					}
					// Cancel upstream before forwarding so the source
					// observes the cancellation even if a downstream
					// callback re-enters the pipeline.
					up.Unsubscribe()
					dst.Next(v)
					dst.Complete()
				},
				OnComplete: func() {
					if hasFallback {
						dst.Next(fallback)
						dst.Complete()
						return
					}
					dst.Error(errors.OutOfRange(
						fmt.Sprintf("stream: source completed before index %d, received %d value(s)", index, seen)).
						WithDetail("index", index).
						WithDetail("received", seen))
				},
				OnError: dst.Error,
			})
		})
	}
}
