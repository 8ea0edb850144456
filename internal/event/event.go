// Package event loads the pull request a run is about, either from the CI
// runner's event payload or from the GitHub API.
package event

import (
	"encoding/json"
	"fmt"
	"os"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/CosmoTheDev/prmedia/models"
)

const (
	unknownAuthor = "unknown"
	unknownRef    = "?"
)

// Load reads a pull_request event payload from path.
func Load(path string) (models.PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.PullRequest{}, fmt.Errorf("reading event %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a pull_request event payload. Every field is optional; a
// payload without a pull_request object yields the documented defaults.
func Parse(data []byte) (models.PullRequest, error) {
	var evt gogithub.PullRequestEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return models.PullRequest{}, fmt.Errorf("parsing event: %w", err)
	}
	return FromPullRequest(evt.GetPullRequest()), nil
}

// FromPullRequest maps a go-github pull request (possibly nil) onto the
// notifier's model, applying fallbacks for missing fields.
func FromPullRequest(pr *gogithub.PullRequest) models.PullRequest {
	return models.PullRequest{
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		URL:          pr.GetHTMLURL(),
		Author:       orDefault(pr.GetUser().GetLogin(), unknownAuthor),
		SourceBranch: orDefault(pr.GetHead().GetRef(), unknownRef),
		TargetBranch: orDefault(pr.GetBase().GetRef(), unknownRef),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
