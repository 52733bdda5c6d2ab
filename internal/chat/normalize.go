// Package chat normalizes loosely-typed persisted chat records into the
// canonical message shape. Persisted history mixes field spellings
// (createdAt vs created_at) depending on which writer produced the entry,
// so all coalescing happens here at the ingestion boundary and the rest of
// the engine only ever sees types.ChatMessage.
package chat

import (
	"fmt"
	"time"

	"github.com/homestage/designexplorer/internal/shared/id"
	"github.com/homestage/designexplorer/internal/types"
)

// Record is one raw persisted chat entry as decoded from JSON.
type Record = map[string]any

// Normalize converts one raw record into a canonical message. Missing ids
// get a locally-minted one; unparseable timestamps default to now; any role
// other than "asset" collapses to "user".
func Normalize(entry Record) types.ChatMessage {
	msg := types.ChatMessage{
		ID:        stringField(entry, "id"),
		Role:      types.RoleUser,
		Content:   contentField(entry),
		CreatedAt: timeField(entry, "createdAt", "created_at"),
		AssetName: stringField(entry, "assetName", "asset_name"),
		AssetURL:  stringField(entry, "assetUrl", "asset_url"),
	}
	if msg.ID == "" {
		msg.ID = id.NewMessageID().String()
	}
	if role, _ := entry["role"].(string); role == string(types.RoleAsset) {
		msg.Role = types.RoleAsset
	}
	return msg
}

// NormalizeHistory converts a full persisted transcript. A nil input yields
// an empty, non-nil transcript.
func NormalizeHistory(entries []Record) []types.ChatMessage {
	out := make([]types.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Normalize(entry))
	}
	return out
}

// stringField returns the first key that holds a string value.
func stringField(entry Record, keys ...string) string {
	for _, key := range keys {
		if s, ok := entry[key].(string); ok {
			return s
		}
	}
	return ""
}

func contentField(entry Record) string {
	switch v := entry["content"].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func timeField(entry Record, keys ...string) time.Time {
	for _, key := range keys {
		s, ok := entry[key].(string)
		if !ok {
			continue
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts
		}
	}
	return time.Now().UTC()
}
