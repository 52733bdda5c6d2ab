package types

// ImageCard is the lightweight, gallery-facing record for one room photo.
// ImageURL always reflects the currently active version of the card's view;
// ViewID is empty until the persistence layer has issued a durable view.
type ImageCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	RoomType    string   `json:"room_type"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	ViewID      string   `json:"view_id,omitempty"`
}

// Clone returns a deep copy so callers can hand cards to the rendering
// layer without sharing the tag slice.
func (c ImageCard) Clone() ImageCard {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	return out
}
