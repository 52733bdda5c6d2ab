// Package history tracks the ordered image-version sequence and navigation
// pointer for every view in the workspace. The logical sequence for a view
// is [original?, edited...]; the pointer selects the active version and is
// clamped on every read and after every structural change.
package history

import (
	"sync"

	"github.com/homestage/designexplorer/internal/types"
)

// sequence holds one view's version list. original is set at most once, at
// creation time; edited grows by append and is only replaced wholesale by
// the server's authoritative post-revert list.
type sequence struct {
	original string
	edited   []string
	index    int
}

// logical returns the navigable version list.
func (s *sequence) logical() []string {
	out := make([]string, 0, len(s.edited)+1)
	if s.original != "" {
		out = append(out, s.original)
	}
	return append(out, s.edited...)
}

func (s *sequence) clamp() {
	last := len(s.logical()) - 1
	if last < 0 {
		s.index = 0
		return
	}
	if s.index < 0 {
		s.index = 0
	}
	if s.index > last {
		s.index = last
	}
}

// Store owns every view's version sequence.
type Store struct {
	mu   sync.RWMutex
	seqs map[string]*sequence
}

// NewStore creates an empty history store.
func NewStore() *Store {
	return &Store{seqs: make(map[string]*sequence)}
}

// Track registers a view's sequence, replacing any previous entry. The
// pointer starts at the last index so the newest version is active.
func (s *Store) Track(viewID, original string, edited []string) {
	if viewID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := &sequence{
		original: original,
		edited:   append([]string(nil), edited...),
	}
	seq.index = len(seq.logical()) - 1
	seq.clamp()
	s.seqs[viewID] = seq
}

// Append records a newly generated version. If the view is not tracked yet
// a sequence is created seeded with fallbackOriginal. An append always
// becomes the active version.
func (s *Store) Append(viewID, url, fallbackOriginal string) {
	if viewID == "" || url == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.seqs[viewID]
	if !ok {
		seq = &sequence{original: fallbackOriginal}
		s.seqs[viewID] = seq
	}
	if seq.original == "" {
		seq.original = fallbackOriginal
	}
	seq.edited = append(seq.edited, url)
	seq.index = len(seq.logical()) - 1
}

// Revert replaces the edited list with the server's authoritative survivors
// and recomputes the pointer as min(previous, new last index).
func (s *Store) Revert(viewID string, edited []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.seqs[viewID]
	if !ok {
		return
	}
	seq.edited = append([]string(nil), edited...)
	seq.clamp()
}

// Navigate moves the pointer by delta, clamped into the sequence bounds.
// Navigating an empty or untracked view is a no-op.
func (s *Store) Navigate(viewID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.seqs[viewID]
	if !ok || len(seq.logical()) == 0 {
		return
	}
	seq.index += delta
	seq.clamp()
}

// ActiveURL returns the version at the pointer, or "" when the view is
// untracked or empty.
func (s *Store) ActiveURL(viewID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.seqs[viewID]
	if !ok {
		return ""
	}
	list := seq.logical()
	if len(list) == 0 {
		return ""
	}
	idx := seq.index
	if idx < 0 {
		idx = 0
	}
	if idx > len(list)-1 {
		idx = len(list) - 1
	}
	return list[idx]
}

// Position reports the pointer and total count, neutral zeros when the
// view is untracked or empty.
func (s *Store) Position(viewID string) types.HistoryPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.seqs[viewID]
	if !ok {
		return types.HistoryPosition{}
	}
	list := seq.logical()
	if len(list) == 0 {
		return types.HistoryPosition{}
	}
	idx := seq.index
	if idx < 0 {
		idx = 0
	}
	if idx > len(list)-1 {
		idx = len(list) - 1
	}
	return types.HistoryPosition{Index: idx, Count: len(list)}
}

// CanRevert reports whether the view has at least one edited version.
func (s *Store) CanRevert(viewID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, ok := s.seqs[viewID]
	return ok && len(seq.edited) > 0
}

// Remove forgets a view's sequence. Removing an unknown view is a no-op.
func (s *Store) Remove(viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seqs, viewID)
}

// Reset clears every tracked sequence.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs = make(map[string]*sequence)
}
