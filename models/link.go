package models

// LinkKind identifies which media detector produced a DetectedLink.
type LinkKind string

const (
	LinkSoundCloud LinkKind = "soundcloud"
	LinkNasaMedia  LinkKind = "nasa"
	LinkYouTube    LinkKind = "youtube"
)

func (k LinkKind) String() string {
	return string(k)
}

// DetectedLink is the first match of one detector in the PR text.
type DetectedLink struct {
	Kind LinkKind `json:"kind"`
	URL  string   `json:"url"`
	// ID is the identifier extracted from URL, empty when none could be derived.
	ID string `json:"id,omitempty"`
}

// HasID reports whether an identifier was extracted from the link.
func (l DetectedLink) HasID() bool {
	return l.ID != ""
}

// DetectedLinks holds at most one link per kind. A nil field means the kind
// was not found.
type DetectedLinks struct {
	SoundCloud *DetectedLink `json:"soundcloud,omitempty"`
	Nasa       *DetectedLink `json:"nasa,omitempty"`
	YouTube    *DetectedLink `json:"youtube,omitempty"`
}

// Empty reports whether no kind was detected.
func (d DetectedLinks) Empty() bool {
	return d.SoundCloud == nil && d.Nasa == nil && d.YouTube == nil
}
