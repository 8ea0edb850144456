package songlink

// linksResponse is the subset of GET /links the notifier reads.
type linksResponse struct {
	EntityUniqueID  string                  `json:"entityUniqueId"`
	PageURL         string                  `json:"pageUrl"`
	LinksByPlatform map[string]platformLink `json:"linksByPlatform"`
}

type platformLink struct {
	URL            string `json:"url"`
	EntityUniqueID string `json:"entityUniqueId"`
}

// platformOrder is the display order of per-platform links. Keys are the
// linksByPlatform keys used by the API.
var platformOrder = []struct {
	key  string
	name string
}{
	{"spotify", "Spotify"},
	{"appleMusic", "Apple Music"},
	{"youtube", "YouTube"},
	{"soundcloud", "SoundCloud"},
}
