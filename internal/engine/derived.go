package engine

import "github.com/homestage/designexplorer/internal/types"

// Derived projections: pure reads over current state, recomputed per call,
// safe when no view or selection exists (neutral defaults).

// Mode returns the current workspace mode.
func (e *Engine) Mode() types.Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// Status returns the transient user-facing status line, empty when clear.
func (e *Engine) Status() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Cards returns a copy of the gallery.
func (e *Engine) Cards() []types.ImageCard {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneCards(e.cards)
}

// Selected returns a copy of the currently selected card, if any.
func (e *Engine) Selected() (types.ImageCard, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selected == nil {
		return types.ImageCard{}, false
	}
	return e.selected.Clone(), true
}

// ActiveViewID resolves the selection to its durable view id, empty when
// nothing is selected or the selection was never persisted.
func (e *Engine) ActiveViewID() string {
	return e.resolveViewID()
}

// ActiveImageURL returns the active version of the selected view, falling
// back to the card's own image when no sequence is tracked. Empty when
// nothing is selected.
func (e *Engine) ActiveImageURL() string {
	viewID := e.resolveViewID()
	if viewID != "" {
		if url := e.history.ActiveURL(viewID); url != "" {
			return url
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selected != nil {
		return e.selected.ImageURL
	}
	return ""
}

// HistoryPosition reports where the active view sits in its version
// sequence; {0, 0} when nothing is selected or tracked.
func (e *Engine) HistoryPosition() types.HistoryPosition {
	viewID := e.resolveViewID()
	if viewID == "" {
		return types.HistoryPosition{}
	}
	return e.history.Position(viewID)
}

// CanRevertLatest reports whether the active view has an edit to revert.
func (e *Engine) CanRevertLatest() bool {
	viewID := e.resolveViewID()
	if viewID == "" {
		return false
	}
	return e.history.CanRevert(viewID)
}

// ChatHistory returns a copy of the active view's transcript.
func (e *Engine) ChatHistory() []types.ChatMessage {
	viewID := e.resolveViewID()
	if viewID == "" {
		return nil
	}
	return e.store.Transcript(viewID)
}

// Assets returns a copy of the active view's asset library, newest first.
func (e *Engine) Assets() []types.AssetItem {
	viewID := e.resolveViewID()
	if viewID == "" {
		return nil
	}
	return e.store.Assets(viewID)
}

// SavedSessions returns the cached saved-session list.
func (e *Engine) SavedSessions() []types.SavedSession {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]types.SavedSession(nil), e.savedSessions...)
}

// LiveSessionID returns the durable id of the session backing the live
// workspace, empty before the first cold start or resume.
func (e *Engine) LiveSessionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.liveSessionID
}

// Timeline returns the most recent activity entries, newest first.
func (e *Engine) Timeline() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.timeline...)
}

// IsScraping reports whether a cold start is in flight.
func (e *Engine) IsScraping() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scraping
}

// IsChatSubmitting reports whether a chat or drop intent is in flight.
func (e *Engine) IsChatSubmitting() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.chatSubmitting
}

// IsReverting reports whether a revert is in flight.
func (e *Engine) IsReverting() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reverting
}

// IsLoadingSessions reports whether a saved-sessions refresh is in flight.
func (e *Engine) IsLoadingSessions() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loadingSaved
}
