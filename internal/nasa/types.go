package nasa

// searchResponse is the subset of GET /search the notifier reads.
type searchResponse struct {
	Collection collection `json:"collection"`
}

type collection struct {
	Href  string `json:"href"`
	Items []item `json:"items"`
}

type item struct {
	Href  string     `json:"href"`
	Data  []itemData `json:"data"`
	Links []itemLink `json:"links"`
}

type itemData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DateCreated string `json:"date_created"` // RFC3339
	Center      string `json:"center"`       // e.g. "JPL", "KSC"
	NasaID      string `json:"nasa_id"`
	MediaType   string `json:"media_type"` // image | video | audio
}

type itemLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`    // "preview" | "alternate" | "captions"
	Render string `json:"render"` // "image" for renderable previews
}
