// Package main is the entry point for the design-explorer workspace
// driver.
//
// The driver wires the persistence API client into the session engine and
// exposes the engine's intents as an interactive command loop, which makes
// it a convenient harness for exercising a running backend.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Against a local backend
//	./explorer -api http://localhost:8000/api/v1
//
//	# Development mode (colored logs, debug level)
//	./explorer -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
