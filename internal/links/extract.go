// Package links finds media links in pull-request text.
package links

import (
	"regexp"
	"strings"

	"github.com/CosmoTheDev/prmedia/models"
)

// Each pattern stops at whitespace or a closing parenthesis so that markdown
// links like [song](https://soundcloud.com/a/b) yield the bare URL. The NASA
// pattern also accepts an empty details segment; such links are detected but
// carry no ID.
var (
	soundCloudRe = regexp.MustCompile(`(?i)https?://(?:www\.)?soundcloud\.com/[^\s)]+`)
	nasaRe       = regexp.MustCompile(`(?i)https?://(?:www\.)?images\.nasa\.gov/details/[^\s)]*`)
	youTubeRe    = regexp.MustCompile(`(?i)https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)[^\s)]+`)

	nasaIDRe    = regexp.MustCompile(`(?i)/details/([^/]*)`)
	youTubeIDRe = regexp.MustCompile(`(?i)(?:[?&]v=|youtu\.be/)([^&?#/]+)`)
)

// Haystack joins title and body the way the detectors expect to scan them.
func Haystack(title, body string) string {
	return title + "\n\n" + body
}

// Extract returns the first SoundCloud, NASA and YouTube link found in text.
// Later occurrences of the same kind are ignored.
func Extract(text string) models.DetectedLinks {
	var out models.DetectedLinks

	if raw := soundCloudRe.FindString(text); raw != "" {
		out.SoundCloud = &models.DetectedLink{Kind: models.LinkSoundCloud, URL: raw}
	}
	if raw := nasaRe.FindString(text); raw != "" {
		out.Nasa = &models.DetectedLink{Kind: models.LinkNasaMedia, URL: raw, ID: NasaID(raw)}
	}
	if raw := youTubeRe.FindString(text); raw != "" {
		out.YouTube = &models.DetectedLink{Kind: models.LinkYouTube, URL: raw, ID: youTubeID(raw)}
	}
	return out
}

// ExtractFrom is Extract over a pull request's title and body.
func ExtractFrom(pr models.PullRequest) models.DetectedLinks {
	return Extract(Haystack(pr.Title, pr.Body))
}

// NasaID returns the path segment after "/details/", or "" when the segment is
// empty or the marker is missing.
func NasaID(raw string) string {
	m := nasaIDRe.FindStringSubmatch(raw)
	if len(m) != 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func youTubeID(raw string) string {
	m := youTubeIDRe.FindStringSubmatch(raw)
	if len(m) != 2 {
		return ""
	}
	return m[1]
}
