package sse

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillsenselab/streamkit/logger"
	"github.com/skillsenselab/streamkit/util"
)

const (
	// DefaultClientBuffer is the event channel capacity for a client.
	DefaultClientBuffer = 256

	// DefaultKeepAlive is the interval between keep-alive comments.
	// It should stay below typical proxy idle timeouts (usually 60s).
	DefaultKeepAlive = 30 * time.Second
)

// Client represents a connected SSE client.
type Client struct {
	id        string            // Unique client ID
	metadata  map[string]string // Optional metadata (userID, sessionID, etc.)
	events    chan []byte       // Channel of wire-format frames for the client
	buffer    int               // Capacity of the events channel
	keepAlive time.Duration     // Keep-alive interval used while serving
	dropped   atomic.Int64      // Frames dropped because the channel was full
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetadata adds a metadata key-value pair to the client.
func WithMetadata(key, value string) ClientOption {
	return func(c *Client) {
		if c.metadata == nil {
			c.metadata = make(map[string]string)
		}
		c.metadata[key] = value
	}
}

// WithUserID sets the user ID metadata.
func WithUserID(userID string) ClientOption {
	return WithMetadata("user_id", userID)
}

// WithSessionID sets the session ID metadata.
func WithSessionID(sessionID string) ClientOption {
	return WithMetadata("session_id", sessionID)
}

// WithBufferSize sets the capacity of the client's event channel.
// Values below 1 fall back to DefaultClientBuffer.
func WithBufferSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.buffer = n
		}
	}
}

// WithKeepAlive sets the keep-alive comment interval for the connection.
// Values of zero or below fall back to DefaultKeepAlive.
func WithKeepAlive(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.keepAlive = d
		}
	}
}

// NewClient creates a new SSE client with optional metadata.
func NewClient(id string, opts ...ClientOption) *Client {
	c := &Client{
		id:        id,
		metadata:  make(map[string]string),
		buffer:    DefaultClientBuffer,
		keepAlive: DefaultKeepAlive,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.events = make(chan []byte, c.buffer)
	return c
}

// ID returns the client's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Metadata returns all client metadata.
func (c *Client) Metadata() map[string]string {
	return c.metadata
}

// GetMetadata returns a specific metadata value.
func (c *Client) GetMetadata(key string) string {
	return c.metadata[key]
}

// UserID returns the client's user ID (convenience method).
func (c *Client) UserID() string {
	return c.metadata["user_id"]
}

// SessionID returns the client's session ID (convenience method).
func (c *Client) SessionID() string {
	return c.metadata["session_id"]
}

// Events returns the channel for receiving wire-format frames.
func (c *Client) Events() <-chan []byte {
	return c.events
}

// Dropped returns how many frames were discarded because the client's
// channel was full.
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Send queues a frame on the client's event channel.
// Returns false if the channel is full (client is slow).
func (c *Client) Send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		// Channel full, client is too slow
		c.dropped.Add(1)
		logger.Warn("[SSE] Client channel full, dropping frame", map[string]interface{}{
			"client_id": c.id,
			"dropped":   c.dropped.Load(),
		})
		return false
	}
}

// Close closes the client's event channel.
func (c *Client) Close() {
	close(c.events)
}

// Hub manages SSE client connections and frame broadcasting.
type Hub struct {
	clients    map[string]*Client // client ID -> Client
	register   chan *Client       // Channel for registering clients
	unregister chan *Client       // Channel for unregistering clients
	broadcast  chan *Message      // Channel for broadcasting messages
	done       chan struct{}      // Signals the hub to stop
	stopped    bool               // Whether the hub has been stopped
	dropped    atomic.Int64       // Frames dropped across all clients, including unregistered ones
	mu         sync.RWMutex       // Protects clients map for reads during matching
}

// Message represents a frame to broadcast.
type Message struct {
	Pattern string // Glob pattern for matching clients
	Data    []byte // Wire-format frame to send
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main event loop.
// It blocks until Stop is called. This should be run in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			logger.Debug("[SSE_HUB] Client registered", map[string]interface{}{
				"client_id":     client.id,
				"total_clients": len(h.clients),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				client.Close()
			}
			h.mu.Unlock()
			logger.Debug("[SSE_HUB] Client unregistered", map[string]interface{}{
				"client_id":     client.id,
				"total_clients": len(h.clients),
			})

		case msg := <-h.broadcast:
			h.broadcastWithPattern(msg.Pattern, msg.Data)
		}
	}
}

// Stop signals the hub to shut down. It closes all client connections
// and causes Run to return. Safe to call multiple times.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// closeAllClients disconnects all clients during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.Close()
		delete(h.clients, id)
	}
	logger.Debug("[SSE_HUB] All clients closed during shutdown")
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a frame to all connected clients.
func (h *Hub) Broadcast(data []byte) {
	h.BroadcastToPattern("*", data)
}

// BroadcastToPattern sends a frame to all clients matching the pattern.
// Pattern uses glob-style matching (e.g., "orders:*" or "orders:abc123").
func (h *Hub) BroadcastToPattern(pattern string, data []byte) {
	h.broadcast <- &Message{
		Pattern: pattern,
		Data:    data,
	}
}

// BroadcastEvent marshals the event and sends it to all clients matching
// the pattern.
func (h *Hub) BroadcastEvent(pattern string, event Event) {
	h.BroadcastToPattern(pattern, event.Marshal())
}

// broadcastWithPattern sends a frame to matching clients.
// This is called from the hub's main goroutine.
func (h *Hub) broadcastWithPattern(pattern string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	matchCount := 0
	for clientID, client := range h.clients {
		matched, err := filepath.Match(pattern, clientID)
		if err != nil {
			logger.Error("[SSE_HUB] Pattern match error", map[string]interface{}{
				"pattern": pattern,
				"error":   err.Error(),
			})
			continue
		}
		if matched {
			if client.Send(data) {
				matchCount++
			} else {
				h.dropped.Add(1)
			}
		}
	}

	if matchCount > 0 {
		logger.Debug("[SSE_HUB] Broadcast sent",
			map[string]interface{}{
				"pattern":     pattern,
				"match_count": matchCount,
				"data_size":   len(data),
			},
		)
	} else {
		logger.Debug("[SSE_HUB] No clients matched pattern",
			map[string]interface{}{
				"pattern":       pattern,
				"total_clients": len(h.clients),
			},
		)
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// DroppedFrames returns how many frames the hub discarded because a
// matching client's channel was full. The count is cumulative and includes
// clients that have since unregistered.
func (h *Hub) DroppedFrames() int64 {
	return h.dropped.Load()
}

// GetClientIDs returns a list of all connected client IDs.
func (h *Hub) GetClientIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return util.Keys(h.clients)
}

// GetClient returns a client by ID, or nil if not found.
func (h *Hub) GetClient(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// Ensure Hub implements Broadcaster.
var _ Broadcaster = (*Hub)(nil)
