package client

// Wire shapes of the persistence API. Field names follow the API's
// snake_case JSON; chat histories stay loosely typed here and are
// normalized at the engine's ingestion boundary.

// ScrapedImage is one candidate room photo returned by the scrape endpoint.
type ScrapedImage struct {
	SourceURL   string `json:"source_url"`
	PublicURL   string `json:"public_url"`
	StoragePath string `json:"storage_path"`
}

type scrapeResponse struct {
	Status string         `json:"status"`
	Data   []ScrapedImage `json:"data"`
}

// ViewSeed seeds one view at session-creation time.
type ViewSeed struct {
	OriginalImage string           `json:"original_image,omitempty"`
	EditedImages  []string         `json:"edited_images"`
	ChatHistory   []map[string]any `json:"chat_history"`
}

// CreatedView is one durable view issued by the persistence layer,
// positionally corresponding to the seed that produced it.
type CreatedView struct {
	ID            string `json:"id"`
	OriginalImage string `json:"original_image,omitempty"`
}

// CreateSessionResult is the response to a session-creation request.
type CreateSessionResult struct {
	SessionID string        `json:"session_id"`
	ViewCount int           `json:"view_count"`
	Views     []CreatedView `json:"views"`
}

// AssetRecord is the persisted shape of an asset library item.
type AssetRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SessionViewRecord is one persisted view inside a saved session.
type SessionViewRecord struct {
	ID            string           `json:"id"`
	OriginalImage string           `json:"original_image,omitempty"`
	EditedImages  []string         `json:"edited_images"`
	ChatHistory   []map[string]any `json:"chat_history"`
	AssetLibrary  []AssetRecord    `json:"asset_library"`
}

// SessionRecord is one saved session as listed by the API.
type SessionRecord struct {
	ID       string              `json:"id"`
	WorkDate string              `json:"work_date,omitempty"`
	Views    []SessionViewRecord `json:"views"`
}

type sessionsResponse struct {
	Sessions []SessionRecord `json:"sessions"`
}

// ChatAppend is the request body for appending one transcript entry.
type ChatAppend struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	AssetName string `json:"asset_name,omitempty"`
	AssetURL  string `json:"asset_url,omitempty"`
}

// ChatAppendResult carries the server's full post-append transcript.
type ChatAppendResult struct {
	ViewID      string           `json:"view_id"`
	ChatHistory []map[string]any `json:"chat_history"`
}

// AssetUpload is the multipart payload for uploading a reference image.
type AssetUpload struct {
	Name         string
	Filename     string
	Content      []byte
	Instructions string
}

// AssetUploadResult is the response to an asset upload. ChatEntry is the
// transcript entry the server synthesized for the upload, if any.
type AssetUploadResult struct {
	Asset     AssetRecord    `json:"asset"`
	PublicURL string         `json:"public_url"`
	ChatEntry map[string]any `json:"chat_entry,omitempty"`
}

// GenerateRequest asks the generation collaborator to transform the current
// image. ReferenceImage carries the secondary asset image for drops.
type GenerateRequest struct {
	Prompt         string `json:"prompt"`
	InputImage     string `json:"input_image"`
	ReferenceImage string `json:"input_image_2,omitempty"`
	ViewID         string `json:"view_id"`
}

// GenerateResult is the generation outcome: the stored URL of the new
// version plus the server's full edited list.
type GenerateResult struct {
	URL          string   `json:"url"`
	OriginalURL  string   `json:"original_url"`
	ViewID       string   `json:"view_id"`
	EditedImages []string `json:"edited_images,omitempty"`
}

type generateResponse struct {
	Status string         `json:"status"`
	Data   GenerateResult `json:"data"`
}

// RevertResult is the server's authoritative state after truncating a
// view's newest edit. A nil ChatHistory means the transcript was untouched.
type RevertResult struct {
	EditedImages []string         `json:"edited_images"`
	ChatHistory  []map[string]any `json:"chat_history,omitempty"`
}

type revertResponse struct {
	Status string       `json:"status"`
	Data   RevertResult `json:"data"`
}
