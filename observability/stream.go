package observability

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skillsenselab/streamkit/stream"
)

// Subscription outcomes recorded by StreamMetrics. A subscription settles
// exactly once: complete or error when the stage delivers a terminal,
// detach when the subscriber unsubscribes before one arrives.
const (
	OutcomeComplete = "complete"
	OutcomeError    = "error"
	OutcomeDetach   = "detach"
)

// StreamMetrics holds OpenTelemetry metric instruments for push-stream
// observability: subscription churn, value throughput, and terminal
// outcomes per stage.
type StreamMetrics struct {
	subscriptionTotal    metric.Int64Counter
	subscriptionActive   metric.Int64UpDownCounter
	emissionTotal        metric.Int64Counter
	terminalTotal        metric.Int64Counter
	subscriptionDuration metric.Float64Histogram
}

// NewStreamMetrics creates stream metric instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	subscriptionTotal, err := meter.Int64Counter("stream.subscription.total",
		metric.WithDescription("Total number of subscriptions started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscription.total counter: %w", err)
	}

	subscriptionActive, err := meter.Int64UpDownCounter("stream.subscription.active",
		metric.WithDescription("Number of currently active subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscription.active gauge: %w", err)
	}

	emissionTotal, err := meter.Int64Counter("stream.emission.total",
		metric.WithDescription("Total values delivered downstream"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.emission.total counter: %w", err)
	}

	terminalTotal, err := meter.Int64Counter("stream.terminal.total",
		metric.WithDescription("Subscription terminals by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.terminal.total counter: %w", err)
	}

	subscriptionDuration, err := meter.Float64Histogram("stream.subscription.duration",
		metric.WithDescription("Subscription lifetime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscription.duration histogram: %w", err)
	}

	return &StreamMetrics{
		subscriptionTotal:    subscriptionTotal,
		subscriptionActive:   subscriptionActive,
		emissionTotal:        emissionTotal,
		terminalTotal:        terminalTotal,
		subscriptionDuration: subscriptionDuration,
	}, nil
}

// RecordSubscribe counts a new subscription against a stage and marks it
// active until RecordTerminal settles it.
func (m *StreamMetrics) RecordSubscribe(ctx context.Context, stage string) {
	attrs := metric.WithAttributes(attribute.String("stage", stage))
	m.subscriptionTotal.Add(ctx, 1, attrs)
	m.subscriptionActive.Add(ctx, 1, attrs)
}

// RecordEmission counts one value delivered downstream by a stage.
func (m *StreamMetrics) RecordEmission(ctx context.Context, stage string) {
	m.emissionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordTerminal settles a subscription: drops it from the active gauge,
// counts the outcome, and records the lifetime.
func (m *StreamMetrics) RecordTerminal(ctx context.Context, stage, outcome string, duration time.Duration) {
	stageAttrs := metric.WithAttributes(attribute.String("stage", stage))
	m.subscriptionActive.Add(ctx, -1, stageAttrs)
	m.terminalTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("outcome", outcome),
	))
	m.subscriptionDuration.Record(ctx, duration.Seconds(), stageAttrs)
}

// InstrumentStage wraps a stage of a stream so that every subscription
// through it records metrics: one subscribe, one emission per value, and
// exactly one terminal carrying the outcome and subscription lifetime.
// Values and terminals pass through unchanged, so the operator can be
// inserted anywhere in a pipe without altering behavior.
func InstrumentStage[T any](m *StreamMetrics, stage string) stream.Operator[T, T] {
	return func(src stream.Observable[T]) stream.Observable[T] {
		return stream.New(func(ctx context.Context, dst *stream.Subscriber[T]) {
			start := time.Now()
			m.RecordSubscribe(ctx, stage)

			var settled atomic.Bool
			settle := func(outcome string) {
				if settled.Swap(true) {
					return
				}
				m.RecordTerminal(ctx, stage, outcome, time.Since(start))
			}

			// Terminal callbacks settle before closing downstream, so this
			// teardown only fires when the subscriber detaches first. It is
			// registered before the upstream handle: teardowns run in
			// reverse, releasing the upstream before the detach settles.
			dst.Add(func() { settle(OutcomeDetach) })

			up := stream.NewSubscription()
			dst.Add(up.Unsubscribe)
			src.SubscribeWith(ctx, up, stream.Callbacks[T]{
				OnNext: func(v T) {
					m.RecordEmission(ctx, stage)
					dst.Next(v)
				},
				OnComplete: func() {
					settle(OutcomeComplete)
					dst.Complete()
				},
				OnError: func(err error) {
					settle(OutcomeError)
					dst.Error(err)
				},
			})
		})
	}
}
