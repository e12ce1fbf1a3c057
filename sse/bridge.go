package sse

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/skillsenselab/streamkit/encryption"
	"github.com/skillsenselab/streamkit/errors"
	"github.com/skillsenselab/streamkit/logger"
	"github.com/skillsenselab/streamkit/stream"
)

type publishOptions struct {
	eventType string
	encryptor encryption.Encryptor
}

// PublishOption configures Publish.
type PublishOption func(*publishOptions)

// WithEventType sets the SSE event type used for stream values.
// Defaults to EventTypeMessage.
func WithEventType(eventType string) PublishOption {
	return func(o *publishOptions) { o.eventType = eventType }
}

// WithEncryptor seals each value payload before it goes on the wire.
// Terminal envelopes (complete, error) are not sealed.
func WithEncryptor(enc encryption.Encryptor) PublishOption {
	return func(o *publishOptions) { o.encryptor = enc }
}

// Publish subscribes to src and broadcasts every value as an SSE event to
// all clients matching pattern. Values are JSON-encoded and carry a unique
// event ID so consumers can resume with Last-Event-ID. Stream termination
// is forwarded as a dedicated complete or error event, so consumers built
// on Source observe the same terminal the source stream produced.
//
// Subscribe runs synchronous producers on the calling goroutine; call
// Publish from a dedicated goroutine when src is long-lived. The returned
// subscription detaches the bridge without disturbing the hub.
func Publish[T any](ctx context.Context, b Broadcaster, pattern string, src stream.Observable[T], opts ...PublishOption) *stream.Subscription {
	o := publishOptions{eventType: EventTypeMessage}
	for _, opt := range opts {
		opt(&o)
	}

	return src.Subscribe(ctx, stream.Callbacks[T]{
		OnNext: func(v T) {
			data, err := encodePayload(v, o.encryptor)
			if err != nil {
				logger.Error("[SSE_PUBLISH] Dropping value", map[string]interface{}{
					"pattern": pattern,
					"error":   err.Error(),
				})
				return
			}
			b.BroadcastToPattern(pattern, Event{
				Type: o.eventType,
				ID:   uuid.NewString(),
				Data: data,
			}.Marshal())
		},
		OnComplete: func() {
			b.BroadcastToPattern(pattern, Event{
				Type: EventTypeComplete,
				ID:   uuid.NewString(),
				Data: "{}",
			}.Marshal())
		},
		OnError: func(err error) {
			body, _ := json.Marshal(errors.Wrap(err).ToResponse())
			b.BroadcastToPattern(pattern, Event{
				Type: EventTypeError,
				ID:   uuid.NewString(),
				Data: string(body),
			}.Marshal())
		},
	})
}

// encodePayload JSON-encodes a value and optionally seals it.
func encodePayload[T any](v T, enc encryption.Encryptor) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", errors.Internal(err)
	}
	if enc == nil {
		return string(payload), nil
	}
	sealed, err := enc.Encrypt(string(payload))
	if err != nil {
		return "", errors.Encryption("seal event payload", err)
	}
	return sealed, nil
}
