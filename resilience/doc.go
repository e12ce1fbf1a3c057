// Package resilience provides retry policies for operations that fail
// transiently, such as reconnecting a live stream source.
//
// Retries wrap the connecting collaborator, never a stream stage itself:
// a stage that has delivered its terminal notification is settled, and
// re-running it would replay the stream from scratch.
//
//	cfg := resilience.DefaultRetryConfig()
//	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
//	    logger.Warn("reconnecting", logger.Fields("attempt", attempt))
//	}
//
//	conn, err := resilience.Retry(ctx, cfg, func(ctx context.Context) (net.Conn, error) {
//	    return dialer.DialContext(ctx, "tcp", addr)
//	})
package resilience
