// Package id provides locally-unique identifier generation for records the
// engine mints before the persistence layer has issued a durable id:
// gallery cards reconstructed from scrapes and chat entries whose persisted
// record carried no id.
//
// Identifiers are prefixed ULIDs (card_*, msg_*), lexicographically sortable
// and safe to generate concurrently. When the entropy source is unavailable
// the generator degrades to random UUIDs rather than failing.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// CardID identifies a gallery image card.
type CardID string

// MessageID identifies a chat transcript entry.
type MessageID string

const (
	CardPrefix    = "card"
	MessagePrefix = "msg"
)

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID string, falling back to a random UUID when
// the entropy source cannot be read.
func (g *Generator) Generate() string {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	u, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// GenerateWithPrefix creates a prefixed identifier string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate())
}

// NewCardID generates a new gallery card ID.
func NewCardID() CardID {
	return CardID(Default().GenerateWithPrefix(CardPrefix))
}

// NewMessageID generates a new chat message ID.
func NewMessageID() MessageID {
	return MessageID(Default().GenerateWithPrefix(MessagePrefix))
}

func (id CardID) String() string    { return string(id) }
func (id MessageID) String() string { return string(id) }
