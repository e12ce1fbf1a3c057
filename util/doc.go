// Package util provides small generic helpers shared across streamkit
// packages: slice and map operations, size parsing, and secret masking
// for log-safe configuration dumps.
package util
