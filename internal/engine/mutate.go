package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/homestage/designexplorer/internal/chat"
	"github.com/homestage/designexplorer/internal/client"
	"github.com/homestage/designexplorer/internal/registry"
	"github.com/homestage/designexplorer/internal/types"
)

// SendChat appends a user message to the active view's server transcript,
// replaces the local transcript with the server's normalized history, then
// independently fires an image generation using the currently active image
// as input. Generation failure is logged and never rolls back the chat
// side; the two are independent outcomes of one intent.
func (e *Engine) SendChat(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}
	viewID := e.resolveViewID()
	if viewID == "" {
		return ErrNoActiveView
	}

	e.mu.Lock()
	e.chatSubmitting = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.chatSubmitting = false
		e.mu.Unlock()
	}()

	res, err := e.remote.AppendChat(ctx, viewID, client.ChatAppend{
		Role:    string(types.RoleUser),
		Message: trimmed,
	})
	if err != nil {
		e.log.Error("failed to append chat", zap.String("view_id", viewID), zap.Error(err))
		return err
	}
	e.store.SetTranscript(viewID, chat.NormalizeHistory(res.ChatHistory))

	e.mu.Lock()
	e.captureLocked(fmt.Sprintf("Prompt sent · %q", snip(trimmed, timelineSnipLen)))
	e.mu.Unlock()

	e.generate(ctx, viewID, client.GenerateRequest{Prompt: trimmed})
	return nil
}

// DropAsset is the drag-an-asset-onto-the-view intent: the transcript entry
// carries the asset reference, and the generation call passes the asset's
// image as a secondary reference.
func (e *Engine) DropAsset(ctx context.Context, asset types.AssetItem, instructions string) error {
	trimmed := strings.TrimSpace(instructions)
	if trimmed == "" {
		return ErrEmptyInstructions
	}
	viewID := e.resolveViewID()
	if viewID == "" {
		return ErrNoActiveView
	}

	e.mu.Lock()
	e.chatSubmitting = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.chatSubmitting = false
		e.mu.Unlock()
	}()

	res, err := e.remote.AppendChat(ctx, viewID, client.ChatAppend{
		Role:      string(types.RoleAsset),
		Message:   trimmed,
		AssetName: asset.Name,
		AssetURL:  asset.ImageURL,
	})
	if err != nil {
		e.log.Error("failed to append asset placement", zap.String("view_id", viewID), zap.Error(err))
		return err
	}
	e.store.SetTranscript(viewID, chat.NormalizeHistory(res.ChatHistory))

	e.mu.Lock()
	e.captureLocked(fmt.Sprintf("%s queued · %q", asset.Name, snip(trimmed, timelineSnipLen)))
	e.mu.Unlock()

	e.generate(ctx, viewID, client.GenerateRequest{
		Prompt:         trimmed,
		ReferenceImage: asset.ImageURL,
	})
	return nil
}

// generate fires the image-generation request for one chat or drop intent
// and applies a successful result. Failures are logged, never propagated:
// the transcript append already succeeded.
func (e *Engine) generate(ctx context.Context, viewID string, gen client.GenerateRequest) {
	source := e.history.ActiveURL(viewID)
	if source == "" {
		source = e.ActiveImageURL()
	}
	if source == "" {
		return
	}
	gen.InputImage = source

	res, err := e.remote.UpdateViewImage(ctx, viewID, gen)
	if err != nil {
		e.log.Error("failed to update view image", zap.String("view_id", viewID), zap.Error(err))
		return
	}
	if res.URL == "" {
		return
	}

	e.history.Append(viewID, res.URL, source)
	e.propagateActiveURL(viewID, res.URL)
	e.RefreshSavedSessions(ctx)
}

// UploadAsset posts a new reference image for the active view and prepends
// the stored asset to its library. If the server synthesized a transcript
// entry for the upload it is appended too. No local mutation happens
// before the upload succeeds.
func (e *Engine) UploadAsset(ctx context.Context, name, filename string, content []byte) (types.AssetItem, error) {
	if strings.TrimSpace(name) == "" {
		return types.AssetItem{}, ErrEmptyAssetName
	}
	viewID := e.resolveViewID()
	if viewID == "" {
		return types.AssetItem{}, ErrNoActiveView
	}

	res, err := e.remote.UploadAsset(ctx, viewID, client.AssetUpload{
		Name:     name,
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		e.log.Error("failed to upload asset", zap.String("view_id", viewID), zap.Error(err))
		return types.AssetItem{}, err
	}

	asset := types.AssetItem{
		ID:       res.Asset.ID,
		Name:     res.Asset.Name,
		ImageURL: res.PublicURL,
	}
	e.store.PrependAsset(viewID, asset)
	if res.ChatEntry != nil {
		e.store.AppendMessage(viewID, chat.Normalize(res.ChatEntry))
	}

	e.mu.Lock()
	e.captureLocked(fmt.Sprintf("Asset added · %s", asset.Name))
	e.mu.Unlock()
	return asset, nil
}

// UpdateAsset locally patches the library item with the matching id. The
// collaborator performs any persistence before invoking this.
func (e *Engine) UpdateAsset(assetID string, patch registry.AssetPatch) error {
	viewID := e.resolveViewID()
	if viewID == "" {
		return ErrNoActiveView
	}

	updated, ok := e.store.UpdateAsset(viewID, assetID, patch)
	if !ok {
		return nil
	}

	e.mu.Lock()
	e.captureLocked(fmt.Sprintf("Asset updated · %s", updated.Name))
	e.mu.Unlock()
	return nil
}

// DeleteAsset removes the asset from the active view's library only after
// the collaborator confirms deletion; a failed call leaves the item in
// place and propagates the error.
func (e *Engine) DeleteAsset(ctx context.Context, assetID string) error {
	viewID := e.resolveViewID()
	if viewID == "" {
		return ErrNoActiveView
	}

	asset, known := e.store.Asset(viewID, assetID)
	if err := e.remote.DeleteAsset(ctx, viewID, assetID); err != nil {
		e.log.Error("failed to delete asset",
			zap.String("view_id", viewID),
			zap.String("asset_id", assetID),
			zap.String("asset_name", asset.Name),
			zap.Error(err))
		return err
	}

	if _, ok := e.store.RemoveAsset(viewID, assetID); ok && known {
		e.mu.Lock()
		e.captureLocked(fmt.Sprintf("Asset removed · %s", asset.Name))
		e.mu.Unlock()
	}
	return nil
}

// RevertLatest asks the server to truncate the active view's newest edit
// and applies the authoritative survivor list. Silently no-ops when there
// is no active view or nothing to revert.
func (e *Engine) RevertLatest(ctx context.Context) error {
	viewID := e.resolveViewID()
	if viewID == "" || !e.history.CanRevert(viewID) {
		return nil
	}

	e.mu.Lock()
	e.reverting = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.reverting = false
		e.mu.Unlock()
	}()

	res, err := e.remote.RevertViewImage(ctx, viewID)
	if err != nil {
		e.log.Error("failed to revert latest edit", zap.String("view_id", viewID), zap.Error(err))
		return err
	}

	e.history.Revert(viewID, res.EditedImages)
	if res.ChatHistory != nil {
		e.store.SetTranscript(viewID, chat.NormalizeHistory(res.ChatHistory))
	}
	e.propagateActiveURL(viewID, e.history.ActiveURL(viewID))

	e.RefreshSavedSessions(ctx)
	return nil
}

// NavigateHistory moves the active view's pointer by delta, clamped to the
// sequence bounds. Pure local navigation: nothing is truncated and the
// gallery card keeps showing the newest version.
func (e *Engine) NavigateHistory(delta int) {
	viewID := e.resolveViewID()
	if viewID == "" {
		return
	}
	e.history.Navigate(viewID, delta)
}

// PreviousImage steps the active view one version back.
func (e *Engine) PreviousImage() { e.NavigateHistory(-1) }

// NextImage steps the active view one version forward.
func (e *Engine) NextImage() { e.NavigateHistory(1) }

// DeleteView removes a view and every local trace of it: gallery cards,
// registry bindings, version sequence, transcript, and asset library. If
// the current selection belonged to the view, selection clears and the
// mode falls back to the gallery.
func (e *Engine) DeleteView(ctx context.Context, viewID string) error {
	if viewID == "" {
		return ErrNoActiveView
	}

	if err := e.remote.DeleteView(ctx, viewID); err != nil {
		e.log.Error("failed to delete view", zap.String("view_id", viewID), zap.Error(err))
		return err
	}

	e.mu.Lock()
	kept := e.cards[:0]
	for _, card := range e.cards {
		if cardView, ok := e.store.ViewFor(card); ok && cardView == viewID {
			continue
		}
		kept = append(kept, card)
	}
	e.cards = kept

	if e.selected != nil {
		if selView, ok := e.store.ViewFor(*e.selected); ok && selView == viewID {
			e.selected = nil
			e.transitionLocked(types.ModeGallery)
		}
	}
	e.captureLocked(fmt.Sprintf("View deleted · %s", shortID(viewID)))
	e.mu.Unlock()

	e.store.RemoveView(viewID)
	e.history.Remove(viewID)

	e.RefreshSavedSessions(ctx)
	return nil
}

// DeleteSession removes a saved session from the server and the local
// cache. Live workspace state is deliberately untouched even when it
// originated from the same session; the two are decoupled copies.
func (e *Engine) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrUnknownSession
	}

	if err := e.remote.DeleteSession(ctx, sessionID); err != nil {
		e.log.Error("failed to delete session", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}

	e.mu.Lock()
	kept := e.savedSessions[:0]
	for _, session := range e.savedSessions {
		if session.ID != sessionID {
			kept = append(kept, session)
		}
	}
	e.savedSessions = kept
	e.captureLocked(fmt.Sprintf("Session deleted · %s", shortID(sessionID)))
	e.mu.Unlock()

	e.RefreshSavedSessions(ctx)
	return nil
}
