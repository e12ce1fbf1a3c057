// Package observability provides OpenTelemetry tracing and metrics
// integration for stream delivery services.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("my-service")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanStreamSubscribe)
//	defer span.End()
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("my-service")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
// Instrumenting a stream stage:
//
//	metrics, err := observability.NewStreamMetrics(observability.Meter("my-service"))
//
//	src := stream.Pipe(events,
//		observability.InstrumentStage[Event](metrics, "source"),
//		stream.ElementAt[Event](5),
//	)
//
// Every subscription through the instrumented stage records a subscribe,
// one emission per value, and a terminal with its outcome (complete,
// error, or detach) and lifetime.
package observability
