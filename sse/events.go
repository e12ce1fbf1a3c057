package sse

import (
	"bytes"
	"fmt"
	"strings"
)

// Standard event types used by streamkit publishers and consumers.
// Domain-specific event types can be passed to Publish via WithEventType.
const (
	// EventTypeConnected is sent once when a client successfully connects.
	EventTypeConnected = "connected"

	// EventTypeKeepAlive is used for keep-alive comments.
	EventTypeKeepAlive = "keepalive"

	// EventTypeMessage carries a stream value. This is the default type
	// used by Publish.
	EventTypeMessage = "message"

	// EventTypeComplete signals that the publishing stream terminated
	// normally and no further values will follow.
	EventTypeComplete = "complete"

	// EventTypeError signals that the publishing stream terminated with an
	// error. The event data carries the JSON error envelope.
	EventTypeError = "error"
)

// Event represents a single server-sent event.
type Event struct {
	// Type is the SSE event type (from the "event:" line). Empty for
	// data-only events.
	Type string
	// Data is the event payload (from the "data:" line(s)). Multi-line
	// data is joined with newlines.
	Data string
	// ID is the event ID (from the "id:" line). Consumers echo the last
	// seen ID in the Last-Event-ID header when reconnecting.
	ID string
}

// Marshal renders the event in wire format, including the blank line that
// terminates it. An event always carries at least one data line so that
// readers on the other end treat it as dispatchable.
func (e Event) Marshal() []byte {
	var buf bytes.Buffer
	if e.Type != "" {
		fmt.Fprintf(&buf, "event: %s\n", e.Type)
	}
	if e.ID != "" {
		fmt.Fprintf(&buf, "id: %s\n", e.ID)
	}
	for _, line := range strings.Split(e.Data, "\n") {
		fmt.Fprintf(&buf, "data: %s\n", line)
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
