// Package engine implements the session state engine: the in-memory model
// of sessions, views, image version histories, chat transcripts, and asset
// libraries, reconciled against the remote persistence API.
//
// The engine is a reconciling cache, not a source of truth. Two entry
// points feed it — a live scrape-and-edit cold start and a resume from a
// persisted session snapshot — and both converge on the same invariants:
// one registry binding per persisted card, one version sequence per view,
// server-authoritative transcripts and revert lists.
//
// The rendering layer issues intents (StartScrape, SendChat, DropAsset,
// RevertLatest, ...) and reads derived projections (ActiveImageURL,
// HistoryPosition, CanRevertLatest, ...); it never writes engine state
// directly. All mutations are applied under the engine's lock, which is
// never held across a remote call.
package engine
