package stream

import "context"

// Collect subscribes to src and gathers every value until the stream
// terminates. It returns the values seen so far together with the
// stream error, or ctx.Err() if the context ends first.
func Collect[T any](ctx context.Context, src Observable[T]) ([]T, error) {
	var values []T
	done := make(chan error, 1)
	sub := src.Subscribe(ctx, Callbacks[T]{
		OnNext:     func(v T) { values = append(values, v) },
		OnComplete: func() { done <- nil },
		OnError:    func(err error) { done <- err },
	})
	defer sub.Unsubscribe()
	select {
	case err := <-done:
		return values, err
	case <-ctx.Done():
		return values, ctx.Err()
	}
}

// Each subscribes to src and invokes fn for every value. An error from
// fn cancels the subscription and is returned.
func Each[T any](ctx context.Context, src Observable[T], fn func(context.Context, T) error) error {
	done := make(chan error, 1)
	sub := NewSubscription()
	defer sub.Unsubscribe()
	src.SubscribeWith(ctx, sub, Callbacks[T]{
		OnNext: func(v T) {
			if err := fn(ctx, v); err != nil {
				sub.Unsubscribe()
				done <- err
			}
		},
		OnComplete: func() { done <- nil },
		OnError:    func(err error) { done <- err },
	})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain subscribes to src, discards every value, and returns the
// terminal error, if any.
func Drain[T any](ctx context.Context, src Observable[T]) error {
	return Each(ctx, src, func(context.Context, T) error { return nil })
}
