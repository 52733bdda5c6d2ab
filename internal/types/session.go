package types

// SavedSessionView is one persisted view inside a saved session snapshot.
// An empty OriginalImage means the view never received reference imagery.
type SavedSessionView struct {
	ID            string        `json:"id"`
	OriginalImage string        `json:"original_image,omitempty"`
	EditedImages  []string      `json:"edited_images"`
	ChatHistory   []ChatMessage `json:"chat_history"`
	Assets        []AssetItem   `json:"assets"`
}

// SavedSession is the persisted-session shape used to seed the live
// workspace during resume. The engine never mutates it after reconstruction.
type SavedSession struct {
	ID       string             `json:"id"`
	WorkDate string             `json:"work_date,omitempty"`
	Views    []SavedSessionView `json:"views"`
}

// HistoryPosition locates the active image within a view's version sequence.
type HistoryPosition struct {
	Index int `json:"index"`
	Count int `json:"count"`
}
