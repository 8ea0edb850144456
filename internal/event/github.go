package event

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/CosmoTheDev/prmedia/internal/config"
	"github.com/CosmoTheDev/prmedia/models"
)

// Ref identifies a pull request as owner/repo#number.
type Ref struct {
	Owner  string
	Repo   string
	Number int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ParseRef parses "owner/repo#123".
func ParseRef(s string) (Ref, error) {
	repo, num, ok := strings.Cut(strings.TrimSpace(s), "#")
	if !ok {
		return Ref{}, fmt.Errorf("invalid pull request %q: expected owner/repo#number", s)
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Ref{}, fmt.Errorf("invalid pull request %q: expected owner/repo#number", s)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return Ref{}, fmt.Errorf("invalid pull request number in %q", s)
	}
	return Ref{Owner: owner, Repo: name, Number: n}, nil
}

// NewGitHubClient builds an API client from cfg. An empty token gives an
// unauthenticated client, which is enough for public repositories.
func NewGitHubClient(ctx context.Context, cfg config.GitHubConfig) (*gogithub.Client, error) {
	client := gogithub.NewClient(nil)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = gogithub.NewClient(oauth2.NewClient(ctx, ts))
	}

	// Support GitHub Enterprise by overriding the base URL.
	if cfg.Host != "" && cfg.Host != "github.com" {
		base := fmt.Sprintf("https://%s/api/v3/", cfg.Host)
		upload := fmt.Sprintf("https://%s/api/uploads/", cfg.Host)
		var err error
		client, err = client.WithEnterpriseURLs(base, upload)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub enterprise URLs: %w", err)
		}
	}
	return client, nil
}

// Fetch loads a pull request through the GitHub API.
func Fetch(ctx context.Context, client *gogithub.Client, ref Ref) (models.PullRequest, error) {
	pr, _, err := client.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return models.PullRequest{}, fmt.Errorf("getting pull request %s: %w", ref, err)
	}
	return FromPullRequest(pr), nil
}
