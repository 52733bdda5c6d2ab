package types

import "testing"

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeOnboarding, ModeGallery, ModeEditor} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if Mode("detail").Valid() {
		t.Error("unknown mode should be invalid")
	}
}

func TestModeTransitions(t *testing.T) {
	cases := []struct {
		from, to Mode
		ok       bool
	}{
		{ModeOnboarding, ModeGallery, true},  // scrape success
		{ModeOnboarding, ModeEditor, true},   // resume with target view
		{ModeGallery, ModeEditor, true},      // select card
		{ModeEditor, ModeGallery, true},      // back / delete active view
		{ModeEditor, ModeOnboarding, true},   // reset
		{ModeGallery, ModeOnboarding, true},  // reset
		{ModeGallery, ModeGallery, true},     // no-op
		{ModeEditor, Mode("detail"), false},  // unknown target
		{ModeOnboarding, Mode("done"), false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}
