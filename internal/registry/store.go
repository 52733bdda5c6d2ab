// Package registry owns the card-to-view registry and the per-view chat
// transcripts and asset libraries. The store is the single mutable home
// for these collections: the engine is its only writer, readers always get
// copies, and Reset clears everything on workspace reset.
package registry

import (
	"sync"

	"github.com/homestage/designexplorer/internal/types"
)

// AssetPatch is a partial update for an asset library item.
type AssetPatch struct {
	Name     *string
	ImageURL *string
}

// Store holds the keyed collections of the live workspace.
type Store struct {
	mu     sync.RWMutex
	views  map[string]string              // card id -> durable view id
	chats  map[string][]types.ChatMessage // view id -> transcript
	assets map[string][]types.AssetItem   // view id -> library, newest first
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.views = make(map[string]string)
	s.chats = make(map[string][]types.ChatMessage)
	s.assets = make(map[string][]types.AssetItem)
}

// Reset clears every collection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Bind registers the durable view id behind a card.
func (s *Store) Bind(cardID, viewID string) {
	if cardID == "" || viewID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[cardID] = viewID
}

// ViewFor resolves a card to its view id, preferring the id embedded in the
// card and falling back to the registry for cards constructed before the
// view id was carried inline.
func (s *Store) ViewFor(card types.ImageCard) (string, bool) {
	if card.ViewID != "" {
		return card.ViewID, true
	}
	return s.ViewByCardID(card.ID)
}

// ViewByCardID looks a card id up in the registry.
func (s *Store) ViewByCardID(cardID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	viewID, ok := s.views[cardID]
	return viewID, ok
}

// SetTranscript replaces a view's transcript with the server's history.
func (s *Store) SetTranscript(viewID string, history []types.ChatMessage) {
	if viewID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[viewID] = append([]types.ChatMessage(nil), history...)
}

// AppendMessage adds one message to a view's transcript. Used only for
// server-synthesized entries (asset upload receipts); user messages arrive
// via SetTranscript.
func (s *Store) AppendMessage(viewID string, msg types.ChatMessage) {
	if viewID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[viewID] = append(s.chats[viewID], msg)
}

// Transcript returns a copy of a view's transcript.
func (s *Store) Transcript(viewID string) []types.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.ChatMessage(nil), s.chats[viewID]...)
}

// SetAssets replaces a view's asset library.
func (s *Store) SetAssets(viewID string, list []types.AssetItem) {
	if viewID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[viewID] = append([]types.AssetItem(nil), list...)
}

// PrependAsset inserts a freshly uploaded asset at the front of the library.
func (s *Store) PrependAsset(viewID string, asset types.AssetItem) {
	if viewID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[viewID] = append([]types.AssetItem{asset}, s.assets[viewID]...)
}

// UpdateAsset patches the library item with the matching id and returns the
// updated item.
func (s *Store) UpdateAsset(viewID, assetID string, patch AssetPatch) (types.AssetItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.assets[viewID]
	for i, asset := range list {
		if asset.ID != assetID {
			continue
		}
		if patch.Name != nil {
			asset.Name = *patch.Name
		}
		if patch.ImageURL != nil {
			asset.ImageURL = *patch.ImageURL
		}
		list[i] = asset
		return asset, true
	}
	return types.AssetItem{}, false
}

// RemoveAsset deletes the library item with the matching id and returns it.
func (s *Store) RemoveAsset(viewID, assetID string) (types.AssetItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.assets[viewID]
	for i, asset := range list {
		if asset.ID != assetID {
			continue
		}
		s.assets[viewID] = append(list[:i:i], list[i+1:]...)
		return asset, true
	}
	return types.AssetItem{}, false
}

// Asset returns the library item with the matching id.
func (s *Store) Asset(viewID, assetID string) (types.AssetItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, asset := range s.assets[viewID] {
		if asset.ID == assetID {
			return asset, true
		}
	}
	return types.AssetItem{}, false
}

// Assets returns a copy of a view's library, newest first.
func (s *Store) Assets(viewID string) []types.AssetItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.AssetItem(nil), s.assets[viewID]...)
}

// RemoveView erases every trace of a view: registry entries pointing at it,
// its transcript, and its asset library. Re-removing is a safe no-op.
func (s *Store) RemoveView(viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for cardID, boundView := range s.views {
		if boundView == viewID {
			delete(s.views, cardID)
		}
	}
	delete(s.chats, viewID)
	delete(s.assets, viewID)
}
