package compose

import "strings"

const (
	// SecretName is the CI secret the real WebSocket token is read from.
	SecretName = "SC_WS_TOKEN"
	// MaskLength is the number of mask characters standing in for the token.
	MaskLength = 8

	skippedSnippet = "_No SC WebSocket token provided; skipping snippet._"
)

// Mask is the placeholder rendered in place of the token.
var Mask = strings.Repeat("*", MaskLength)

var maskedSnippet = strings.Join([]string{
	"```js",
	"const signalingChannel = new WebSocket(",
	"  'wss://api.soundcloud.com/realtime?token=" + Mask + "'",
	");",
	"",
	"signalingChannel.onopen = () => {",
	"  console.log('WebSocket connection opened.');",
	"};",
	"",
	"signalingChannel.onmessage = (event) => {",
	"  console.log('Received:', event.data);",
	"};",
	"```",
	"",
	"_Runtime note: The real token is injected at runtime from the secret `" + SecretName + "` and is not shown here._",
}, "\n")

// Snippet returns the illustrative WebSocket code block when a token secret is
// configured, or a one-line skip note otherwise.
func Snippet(secretConfigured bool) string {
	if secretConfigured {
		return maskedSnippet
	}
	return skippedSnippet
}
