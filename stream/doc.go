// Package stream provides composable, push-based observable streams.
//
// An Observable is lazy: nothing runs until Subscribe. Each subscription
// activates the producer once, and the producer pushes zero or more values
// to the observer followed by exactly one terminal notification (Complete
// or Error). Notifications for a single subscription are serialized.
//
// Subscribing returns a Subscription handle. Unsubscribing stops further
// notifications in both directions and releases producer resources;
// cancelling twice is a no-op.
//
// # Operators
//
// Operators are factories that return reusable, immutable transformers
// from one observable to another:
//
//   - ElementAt / ElementAtOrDefault: forward only the value at an ordinal
//     position, then complete
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Take: forward the first n values, then complete
//   - Tap: side-effect without altering the value (logging, metrics)
//
// Same-type operators chain with Pipe; type-changing operators apply
// directly: Map(fn)(src).
//
// # Usage
//
//	src := stream.FromSlice([]int{10, 20, 30})
//	second := stream.Pipe(src, stream.ElementAt[int](1))
//	got, err := stream.Collect(ctx, second) // [20], nil
//
// Selection stages release their upstream registration as soon as their
// job is done: ElementAt cancels upstream before forwarding the matched
// value, so a source never produces more than it has to.
package stream
