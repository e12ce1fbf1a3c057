// Package server provides a unified HTTP server for streamkit services,
// using Gin for routed endpoints and a root ServeMux for raw handlers such
// as SSE streams, wrapped with h2c so streaming works over HTTP/2 cleartext.
//
// The server follows streamkit's component pattern with lifecycle management,
// health endpoints, and a configurable middleware stack applied at the
// handler level so it covers Gin routes and mux mounts alike.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with a status-capturing writer that
//     preserves Flush for streaming responses
//   - CORS: cross-origin resource sharing configuration
//   - BodySizeLimit: request body size limits
//   - Auth: Bearer token authentication via a pluggable validator
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /version: build version information
//   - /metrics: runtime memory and goroutine stats
//
// # Serving SSE
//
// Mount the SSE handler on the root mux; write timeouts are cleared per
// stream by the handler itself:
//
//	srv := server.New(cfg, log)
//	srv.ApplyDefaults("orders", registry.HealthAll)
//	srv.HandleFunc("/events/{topic}", func(w http.ResponseWriter, r *http.Request) {
//	    sse.ServeSSE(hub, w, r, uuid.NewString())
//	})
package server
