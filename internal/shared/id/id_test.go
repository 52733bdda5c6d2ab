package id

import (
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestGenerateUnique(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		if id == "" {
			t.Fatal("generated empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	g := NewGenerator()
	id := g.GenerateWithPrefix("card")
	if !strings.HasPrefix(id, "card_") {
		t.Errorf("expected card_ prefix, got %s", id)
	}
}

func TestTypedIDs(t *testing.T) {
	card := NewCardID()
	if !strings.HasPrefix(card.String(), CardPrefix+"_") {
		t.Errorf("card id missing prefix: %s", card)
	}
	msg := NewMessageID()
	if !strings.HasPrefix(msg.String(), MessagePrefix+"_") {
		t.Errorf("message id missing prefix: %s", msg)
	}
}

func TestEntropyFallback(t *testing.T) {
	g := NewGeneratorWithEntropy(failingReader{})
	a := g.Generate()
	b := g.Generate()
	if a == "" || b == "" {
		t.Fatal("fallback produced empty id")
	}
	if a == b {
		t.Fatalf("fallback ids should be unique, got %s twice", a)
	}
}
