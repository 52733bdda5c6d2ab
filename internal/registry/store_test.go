package registry

import (
	"testing"

	"github.com/homestage/designexplorer/internal/types"
)

func TestViewForPrefersEmbeddedID(t *testing.T) {
	s := NewStore()
	s.Bind("card-1", "view-old")

	viewID, ok := s.ViewFor(types.ImageCard{ID: "card-1", ViewID: "view-new"})
	if !ok || viewID != "view-new" {
		t.Fatalf("expected embedded view id, got %q ok=%v", viewID, ok)
	}
}

func TestViewForFallsBackToRegistry(t *testing.T) {
	s := NewStore()
	s.Bind("card-1", "view-1")

	viewID, ok := s.ViewFor(types.ImageCard{ID: "card-1"})
	if !ok || viewID != "view-1" {
		t.Fatalf("expected registry fallback, got %q ok=%v", viewID, ok)
	}

	if _, ok := s.ViewFor(types.ImageCard{ID: "unknown"}); ok {
		t.Error("unknown card should not resolve")
	}
}

func TestTranscriptIsolation(t *testing.T) {
	s := NewStore()
	s.SetTranscript("view-1", []types.ChatMessage{{ID: "m1", Content: "hello"}})

	got := s.Transcript("view-1")
	got[0].Content = "mutated"

	if s.Transcript("view-1")[0].Content != "hello" {
		t.Error("Transcript should return a copy")
	}
}

func TestAppendMessage(t *testing.T) {
	s := NewStore()
	s.SetTranscript("view-1", []types.ChatMessage{{ID: "m1"}})
	s.AppendMessage("view-1", types.ChatMessage{ID: "m2"})

	if got := len(s.Transcript("view-1")); got != 2 {
		t.Fatalf("expected 2 messages, got %d", got)
	}
}

func TestAssetLibraryOrdering(t *testing.T) {
	s := NewStore()
	s.PrependAsset("view-1", types.AssetItem{ID: "a1", Name: "Lamp"})
	s.PrependAsset("view-1", types.AssetItem{ID: "a2", Name: "Sofa"})

	list := s.Assets("view-1")
	if len(list) != 2 || list[0].ID != "a2" {
		t.Fatalf("expected newest-first ordering, got %+v", list)
	}
}

func TestUpdateAsset(t *testing.T) {
	s := NewStore()
	s.PrependAsset("view-1", types.AssetItem{ID: "a1", Name: "Lamp", ImageURL: "old.png"})

	name := "Floor Lamp"
	updated, ok := s.UpdateAsset("view-1", "a1", AssetPatch{Name: &name})
	if !ok || updated.Name != "Floor Lamp" || updated.ImageURL != "old.png" {
		t.Fatalf("unexpected update result: %+v ok=%v", updated, ok)
	}

	if _, ok := s.UpdateAsset("view-1", "missing", AssetPatch{Name: &name}); ok {
		t.Error("updating a missing asset should report false")
	}
}

func TestRemoveAsset(t *testing.T) {
	s := NewStore()
	s.PrependAsset("view-1", types.AssetItem{ID: "a1", Name: "Lamp"})

	removed, ok := s.RemoveAsset("view-1", "a1")
	if !ok || removed.Name != "Lamp" {
		t.Fatalf("unexpected removal: %+v ok=%v", removed, ok)
	}
	if len(s.Assets("view-1")) != 0 {
		t.Error("library should be empty after removal")
	}
	if _, ok := s.RemoveAsset("view-1", "a1"); ok {
		t.Error("re-removal should report false")
	}
}

func TestRemoveViewErasesAllTraces(t *testing.T) {
	s := NewStore()
	s.Bind("card-1", "view-1")
	s.Bind("card-2", "view-1")
	s.Bind("card-3", "view-2")
	s.SetTranscript("view-1", []types.ChatMessage{{ID: "m1"}})
	s.SetAssets("view-1", []types.AssetItem{{ID: "a1"}})

	s.RemoveView("view-1")

	if _, ok := s.ViewByCardID("card-1"); ok {
		t.Error("card-1 binding should be gone")
	}
	if _, ok := s.ViewByCardID("card-2"); ok {
		t.Error("card-2 binding should be gone")
	}
	if _, ok := s.ViewByCardID("card-3"); !ok {
		t.Error("card-3 binding should survive")
	}
	if len(s.Transcript("view-1")) != 0 || len(s.Assets("view-1")) != 0 {
		t.Error("per-view collections should be cleared")
	}

	s.RemoveView("view-1") // safe no-op
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.Bind("card-1", "view-1")
	s.SetTranscript("view-1", []types.ChatMessage{{ID: "m1"}})
	s.SetAssets("view-1", []types.AssetItem{{ID: "a1"}})

	s.Reset()

	if _, ok := s.ViewByCardID("card-1"); ok {
		t.Error("registry should be empty after reset")
	}
	if len(s.Transcript("view-1")) != 0 || len(s.Assets("view-1")) != 0 {
		t.Error("collections should be empty after reset")
	}
}
