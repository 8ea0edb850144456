package models

// PlatformLink is one per-platform entry of a resolved universal link.
type PlatformLink struct {
	Name string `json:"name"` // "Spotify" | "Apple Music" | "YouTube" | "SoundCloud"
	URL  string `json:"url"`
}

// UniversalLink is the outcome of resolving a SoundCloud URL through Songlink.
// The zero value is the unresolved result.
type UniversalLink struct {
	PageURL   string         `json:"page_url,omitempty"`
	Platforms []PlatformLink `json:"platforms,omitempty"`
}

// Resolved reports whether the service returned a universal page URL.
func (u UniversalLink) Resolved() bool {
	return u.PageURL != ""
}

// MediaCard is the metadata shown for a NASA image archive asset.
type MediaCard struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DateCreated  string `json:"date_created"`
	Center       string `json:"center"`
	NasaID       string `json:"nasa_id"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"` // empty when no preview image exists
	CanonicalURL string `json:"canonical_url"`
}

// HasThumbnail reports whether the card carries a preview image.
func (c MediaCard) HasThumbnail() bool {
	return c.ThumbnailURL != ""
}
