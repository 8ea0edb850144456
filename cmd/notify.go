package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/CosmoTheDev/prmedia/internal/config"
	"github.com/CosmoTheDev/prmedia/internal/event"
	"github.com/CosmoTheDev/prmedia/internal/nasa"
	"github.com/CosmoTheDev/prmedia/internal/notify"
	"github.com/CosmoTheDev/prmedia/internal/pipeline"
	"github.com/CosmoTheDev/prmedia/internal/songlink"
	"github.com/CosmoTheDev/prmedia/models"
	"github.com/spf13/cobra"
)

var (
	notifyEventPath string
	notifyPR        string
	notifyDryRun    bool
	notifyOutput    string
	notifyLegacy    bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Post the media summary for a pull request to Slack",
	Long: `Reads the pull_request event (GITHUB_EVENT_PATH), detects SoundCloud,
NASA image library and YouTube links, resolves them, and posts one message to
SLACK_CHANNEL_ID using SLACK_BOT_TOKEN. If SC_WS_TOKEN is set, a masked
WebSocket snippet is included; the token itself is never printed.

Examples:
  prmedia notify
  prmedia notify --event ./event.json --dry-run --output yaml
  GITHUB_TOKEN=... prmedia notify --pr acme/app#42
  prmedia notify --legacy`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().StringVar(&notifyEventPath, "event", "", "Path to the pull_request event JSON (overrides GITHUB_EVENT_PATH)")
	notifyCmd.Flags().StringVar(&notifyPR, "pr", "", "Fetch the pull request from the GitHub API instead (owner/repo#number)")
	notifyCmd.Flags().BoolVar(&notifyDryRun, "dry-run", false, "Print the message instead of posting it")
	notifyCmd.Flags().StringVar(&notifyOutput, "output", "json", "Dry-run output format: json|yaml")
	notifyCmd.Flags().BoolVar(&notifyLegacy, "legacy", false, "SoundCloud-only plain-text message")
}

func runNotify(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if notifyEventPath != "" {
		cfg.GitHub.EventPath = notifyEventPath
	}

	// Configuration problems abort before any network call.
	if notifyDryRun {
		if notifyPR == "" && cfg.GitHub.EventPath == "" {
			return &config.ConfigError{Missing: []string{"GITHUB_EVENT_PATH"}}
		}
	} else if err := cfg.Validate(notifyPR == ""); err != nil {
		return err
	}

	pr, err := loadPullRequest(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Debug("Loaded pull request", "title", pr.Title, "author", pr.Author, "url", pr.URL)

	hc := cfg.HTTPClient()
	var sender pipeline.Sender
	if notifyDryRun {
		sender = notify.NewWriter(cmd.OutOrStdout(), notifyOutput)
	} else {
		sender = notify.NewSlack(cfg.Slack, hc)
	}

	p := pipeline.New(
		songlink.New(cfg.Songlink.BaseURL, hc),
		nasa.New(cfg.NASA.APIURL, cfg.NASA.DetailsURL, hc),
		sender,
	)
	if _, err := p.Run(ctx, pr, pipeline.Options{
		SecretConfigured: cfg.SecretConfigured(),
		Legacy:           notifyLegacy,
	}); err != nil {
		return err
	}

	if !notifyDryRun {
		fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("Posted PR media summary to Slack channel "+cfg.Slack.ChannelID+"."))
	}
	return nil
}

func loadPullRequest(ctx context.Context, cfg *config.Config) (models.PullRequest, error) {
	if notifyPR == "" {
		return event.Load(cfg.GitHub.EventPath)
	}
	ref, err := event.ParseRef(notifyPR)
	if err != nil {
		return models.PullRequest{}, err
	}
	client, err := event.NewGitHubClient(ctx, cfg.GitHub)
	if err != nil {
		return models.PullRequest{}, err
	}
	return event.Fetch(ctx, client, ref)
}
