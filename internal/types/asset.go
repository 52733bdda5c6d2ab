package types

// AssetItem is a user-supplied reference image placeable onto a view.
// The ID is assigned by the persistence layer at upload time.
type AssetItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}
