// Package types defines the canonical domain model shared across the
// engine: image cards, chat messages, assets, saved-session snapshots,
// and the workspace mode machine.
package types
