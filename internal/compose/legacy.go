package compose

import (
	"fmt"
	"strings"

	"github.com/CosmoTheDev/prmedia/models"
)

// Legacy renders the single-detector message: SoundCloud only, as one mrkdwn
// text with no blocks. NASA and YouTube inputs are ignored.
func Legacy(in Input) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "*PR:* <%s|%s>\n*Author:* %s\n*Branch:* `%s` → `%s`\n",
		in.PR.URL, escape(in.PR.Title), in.PR.Author, in.PR.SourceBranch, in.PR.TargetBranch)

	if sc := in.Links.SoundCloud; sc != nil {
		var res models.UniversalLink
		if in.SoundCloud != nil {
			res = *in.SoundCloud
		}
		fmt.Fprintf(&b, "\n*Detected SoundCloud URL:* %s\n", sc.URL)
		if res.Resolved() {
			fmt.Fprintf(&b, "*Songlink:* <%s|Open universal link>\n", res.PageURL)
			if len(res.Platforms) > 0 {
				b.WriteString(platformList(res.Platforms))
				b.WriteString("\n")
			}
		} else {
			b.WriteString("*Songlink:* could not resolve via Odesli\n")
		}
	} else {
		b.WriteString("\n_No SoundCloud URL found in PR title/body._\n")
	}

	b.WriteString("\n*SoundCloud WebSocket snippet (masked token):*\n")
	b.WriteString(Snippet(in.SecretConfigured))
	return Document{Text: b.String()}
}
