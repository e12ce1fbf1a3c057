// Package errors defines the structured error type shared by streamkit's
// stream operators and HTTP transports.
//
// Failures surface as *AppError values carrying a machine-readable code,
// a recommended HTTP status, and a retryable flag. Constructors cover the
// common cases:
//
//	errors.OutOfRange("argument out of range")
//	errors.StreamInterrupted("orders feed", cause)
//	errors.NotFound("stream", "orders")
//
// ToResponse and Wrap convert between *AppError and wire-level
// representations so every service returns the same JSON error body.
package errors
