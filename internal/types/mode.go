package types

// Mode is the top-level state of the workspace UI.
type Mode string

const (
	ModeOnboarding Mode = "onboarding"
	ModeGallery    Mode = "gallery"
	ModeEditor     Mode = "editor"
)

// legalModeTransitions enumerates the allowed mode changes:
// scrape/resume success leaves onboarding, select enters the editor,
// back (or deleting the active view) returns to the gallery, and reset
// returns to onboarding from anywhere.
var legalModeTransitions = map[Mode][]Mode{
	ModeOnboarding: {ModeGallery, ModeEditor},
	ModeGallery:    {ModeEditor, ModeOnboarding},
	ModeEditor:     {ModeGallery, ModeOnboarding},
}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOnboarding, ModeGallery, ModeEditor:
		return true
	}
	return false
}

// CanTransition reports whether moving from m to next is legal.
// Staying in the current mode is always allowed.
func (m Mode) CanTransition(next Mode) bool {
	if m == next {
		return true
	}
	for _, allowed := range legalModeTransitions[m] {
		if allowed == next {
			return true
		}
	}
	return false
}
