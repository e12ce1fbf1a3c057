package sse

// Broadcaster is an interface for broadcasting frames to clients.
// This allows publishers to depend on an abstraction rather than a concrete Hub.
type Broadcaster interface {
	// BroadcastToPattern sends a wire-format frame to all clients matching
	// the given pattern. Pattern uses glob-style matching (e.g., "orders:*"
	// or "orders:abc123").
	BroadcastToPattern(pattern string, data []byte)
}
