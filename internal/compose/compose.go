// Package compose turns a pull request and its media enrichments into a Slack
// message. Nothing here touches the environment, filesystem or network.
package compose

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/CosmoTheDev/prmedia/models"
)

// Input is everything a message is built from.
type Input struct {
	PR    models.PullRequest
	Links models.DetectedLinks
	// SoundCloud is the Songlink result for Links.SoundCloud; nil is treated
	// as unresolved.
	SoundCloud *models.UniversalLink
	// Nasa is nil when no card could be looked up.
	Nasa *models.MediaCard
	// SecretConfigured reports whether the WebSocket token secret is set.
	// Its value never reaches this package.
	SecretConfigured bool
}

// Document is a composed chat message: fallback text plus Block Kit blocks.
type Document struct {
	Text   string        `json:"text"`
	Blocks []slack.Block `json:"blocks,omitempty"`
}

// JSON returns the document in its wire shape.
func (d Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// Compose builds the notification. Section order is fixed: header, SoundCloud,
// NASA, YouTube, snippet. Conditional sections are left out entirely when
// their input is missing.
func Compose(in Input) Document {
	blocks := []slack.Block{section(header(in.PR))}

	if sc := in.Links.SoundCloud; sc != nil {
		var res models.UniversalLink
		if in.SoundCloud != nil {
			res = *in.SoundCloud
		}
		blocks = append(blocks, slack.NewDividerBlock(), section(soundCloudText(sc.URL, res)))
		if res.Resolved() && len(res.Platforms) > 0 {
			blocks = append(blocks, section(platformList(res.Platforms)))
		}
	}

	if card := in.Nasa; card != nil {
		blocks = append(blocks, slack.NewDividerBlock(), nasaSection(*card))
	}

	if yt := in.Links.YouTube; yt != nil {
		blocks = append(blocks, slack.NewDividerBlock(), section("*YouTube:* "+yt.URL))
	}

	blocks = append(blocks,
		slack.NewDividerBlock(),
		section("*SoundCloud WebSocket snippet (masked token):*\n"+Snippet(in.SecretConfigured)),
	)

	return Document{Text: FallbackText(in.PR), Blocks: blocks}
}

// FallbackText is shown by clients that cannot render blocks.
func FallbackText(pr models.PullRequest) string {
	return "PR: " + pr.Title
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func header(pr models.PullRequest) string {
	return fmt.Sprintf("*PR:* <%s|%s>\n*Author:* %s\n*Branch:* `%s` → `%s`",
		pr.URL, escape(pr.Title), pr.Author, pr.SourceBranch, pr.TargetBranch)
}

func soundCloudText(raw string, res models.UniversalLink) string {
	text := "*Detected SoundCloud URL:*\n" + raw + "\n"
	if res.Resolved() {
		return text + fmt.Sprintf("*Songlink:* <%s|Open universal link>", res.PageURL)
	}
	return text + "_Songlink could not be resolved_"
}

func platformList(platforms []models.PlatformLink) string {
	lines := make([]string, 0, len(platforms))
	for _, p := range platforms {
		lines = append(lines, fmt.Sprintf("• *%s:* <%s|open>", p.Name, p.URL))
	}
	return strings.Join(lines, "\n")
}

func nasaSection(card models.MediaCard) *slack.SectionBlock {
	text := fmt.Sprintf("*NASA Media:*\n*Title:* %s\n*Date:* %s\n*Center:* %s\n<%s|Open on images.nasa.gov>",
		card.Title, card.DateCreated, card.Center, card.CanonicalURL)
	var accessory *slack.Accessory
	if card.HasThumbnail() {
		accessory = slack.NewAccessory(slack.NewImageBlockElement(card.ThumbnailURL, "NASA media thumbnail"))
	}
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, accessory)
}

// escape applies Slack's mrkdwn control-character escaping.
func escape(s string) string {
	return mrkdwnEscaper.Replace(s)
}

var mrkdwnEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
