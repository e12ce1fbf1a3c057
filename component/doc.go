// Package component defines the lifecycle contract for long-running
// services in streamkit.
//
// Components represent services that require startup, shutdown, and health
// monitoring, such as the HTTP server and the SSE hub. A Registry starts
// them in registration order, stops them in reverse order, and aggregates
// their health.
package component
