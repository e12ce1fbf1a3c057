// Package sse provides Server-Sent Events (SSE) infrastructure for
// real-time delivery of stream values in streamkit applications.
//
// It covers both ends of the wire. On the serving side a Hub routes
// frames to connected clients by glob pattern, ServeSSE attaches an HTTP
// connection to the hub, and Publish bridges a stream.Observable onto the
// hub so every value, and the stream's terminal, reaches matching clients.
// On the consuming side Reader parses raw SSE streams and Source exposes a
// remote endpoint as a stream.Observable[Event] with reconnect and
// Last-Event-ID resume.
//
// # Architecture
//
//   - Hub: central router managing client registrations and broadcasts
//   - ServeSSE: HTTP handler loop writing frames and keep-alives
//   - Publish: stream.Observable -> hub bridge (values, complete, error)
//   - Source: remote SSE endpoint -> stream.Observable[Event]
//
// # Usage
//
//	hub := sse.NewHub()
//	go hub.Run()
//
//	mux.HandleFunc("/events/", func(w http.ResponseWriter, r *http.Request) {
//		sse.ServeSSE(hub, w, r, "orders:"+r.PathValue("id"))
//	})
//
//	go sse.Publish(ctx, hub, "orders:*", orderUpdates)
//
// A remote consumer sees the same stream:
//
//	events := sse.Source(sse.SourceConfig{Endpoint: "https://api.example.com/events/live"})
//	values, err := stream.Collect(ctx, events)
package sse
