package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// AggregateStatus folds component healths into one service status: any
// unhealthy component makes the service unhealthy, otherwise any degraded
// component makes it degraded.
func AggregateStatus(healths []Health) HealthStatus {
	overall := StatusHealthy
	for _, h := range healths {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}

// Component represents a lifecycle-managed service. Long-running pieces of
// the delivery stack (HTTP server, SSE hub) implement this interface so a
// Registry can start, stop, and health-check them together.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description holds summary information logged when a component starts.
type Description struct {
	// Name is the human-readable display name (e.g., "HTTP Server", "SSE Hub").
	// If empty, the component's Name() is used.
	Name string
	// Type categorizes the component: "server", "hub", "source", etc.
	Type string
	// Details is a human-readable one-liner, e.g. "0.0.0.0:8080 h2c".
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by Components to self-report what
// they are and how they are configured. The registry logs the description
// when the component starts.
type Describable interface {
	Describe() Description
}
