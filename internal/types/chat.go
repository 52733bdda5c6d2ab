package types

import "time"

// Role identifies who (or what) produced a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAsset Role = "asset"
)

// ChatMessage is the canonical shape of one transcript entry. Messages are
// immutable once created; transcripts are replaced wholesale with the
// server's history, never patched in place.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	AssetName string    `json:"asset_name,omitempty"`
	AssetURL  string    `json:"asset_url,omitempty"`
}
