package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillsenselab/streamkit/encryption"
	"github.com/skillsenselab/streamkit/errors"
	"github.com/skillsenselab/streamkit/logger"
	"github.com/skillsenselab/streamkit/resilience"
	"github.com/skillsenselab/streamkit/stream"
	"github.com/skillsenselab/streamkit/validation"
	"github.com/skillsenselab/streamkit/version"
)

// SourceConfig configures Source.
type SourceConfig struct {
	// Endpoint is the URL of the SSE endpoint.
	Endpoint string
	// Client is the HTTP client used to connect. Defaults to http.DefaultClient.
	Client *http.Client
	// Header is added to every connect request (e.g. Authorization).
	Header http.Header
	// Retry bounds how often the connection is (re)established over the
	// stream's lifetime. The zero value uses the resilience defaults.
	Retry resilience.RetryConfig
	// Encryptor opens value payloads sealed by a publisher using
	// WithEncryptor. Terminal envelopes are never sealed.
	Encryptor encryption.Encryptor
}

// Source returns a cold observable over an SSE endpoint. Each subscription
// opens its own connection and emits every event received. Complete and
// error events terminate the stream the same way the publishing side
// terminated it; any other drop triggers a reconnect that resumes from the
// last seen event ID via the Last-Event-ID header.
//
// The producer blocks on network reads, so subscribe from a dedicated
// goroutine or collect through a terminal that does.
func Source(cfg SourceConfig) stream.Observable[Event] {
	return stream.New(func(ctx context.Context, s *stream.Subscriber[Event]) {
		if err := validation.New().Required("endpoint", cfg.Endpoint).Validate(); err != nil {
			s.Error(err)
			return
		}

		client := cfg.Client
		if client == nil {
			client = http.DefaultClient
		}

		// Detaching the subscriber cancels any in-flight read.
		reqCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		s.Add(cancel)

		retryCfg := cfg.Retry
		if retryCfg.OnRetry == nil {
			retryCfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
				logger.Warn("[SSE_SOURCE] Reconnecting", map[string]interface{}{
					"endpoint": cfg.Endpoint,
					"attempt":  attempt,
					"backoff":  backoff.String(),
					"error":    err.Error(),
				})
			}
		}

		var lastID string
		err := resilience.RetryFunc(reqCtx, retryCfg, func(ctx context.Context) error {
			resp, err := connect(ctx, client, cfg, lastID)
			if err != nil {
				return err
			}
			return consume(s, resp.Body, &lastID, cfg.Encryptor)
		})
		if err != nil {
			if ctx.Err() != nil {
				s.Error(ctx.Err())
				return
			}
			if s.Closed() {
				return
			}
			s.Error(errors.StreamInterrupted(cfg.Endpoint, err))
		}
	})
}

// connect opens the SSE connection, resuming from lastID when set.
func connect(ctx context.Context, client *http.Client, cfg SourceConfig, lastID string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Endpoint, nil)
	if err != nil {
		return nil, errors.InvalidInput("endpoint", err.Error())
	}
	for key, values := range cfg.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", version.UserAgent())
	}
	if lastID != "" {
		req.Header.Set("Last-Event-ID", lastID)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.ConnectionFailed(cfg.Endpoint).WithDetail("status", resp.StatusCode)
	}
	return resp, nil
}

// consume reads events from one connection until the stream terminates or
// the connection drops. A nil return means a terminal was delivered (or the
// subscriber detached); an error means the connection dropped and the
// caller may reconnect.
func consume(s *stream.Subscriber[Event], body io.ReadCloser, lastID *string, enc encryption.Encryptor) error {
	r := NewReader(body)
	defer func() {
		_ = r.Close()
	}()

	for {
		if s.Closed() {
			return nil
		}
		ev, err := r.Next()
		if err != nil {
			return err
		}
		if ev.ID != "" {
			*lastID = ev.ID
		}

		switch ev.Type {
		case EventTypeConnected:
			// Handshake from the serving side, not a stream value.
			continue
		case EventTypeComplete:
			s.Complete()
			return nil
		case EventTypeError:
			s.Error(decodeStreamError(ev.Data))
			return nil
		}

		out := *ev
		if enc != nil {
			opened, err := enc.Decrypt(ev.Data)
			if err != nil {
				s.Error(errors.Encryption("open event payload", err))
				return nil
			}
			out.Data = opened
		}
		s.Next(out)
	}
}

// decodeStreamError rebuilds the publisher's error from the wire envelope.
func decodeStreamError(data string) error {
	var resp errors.ErrorResponse
	if err := json.Unmarshal([]byte(data), &resp); err == nil && resp.Error.Code != "" {
		return resp.ToAppError(http.StatusBadGateway)
	}
	return errors.StreamInterrupted("publisher", fmt.Errorf("undecodable error event: %s", data))
}
