package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/CosmoTheDev/prmedia/internal/config"
	"github.com/CosmoTheDev/prmedia/internal/event"
	"github.com/CosmoTheDev/prmedia/internal/notify"
	"github.com/spf13/cobra"
)

var doctorSkipAuth bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify configuration, event payload and Slack credentials",
	Long: `Checks that the Slack bot token and channel are set, that the event
payload can be read, and that Slack accepts the token (auth.test).

Use --skip-auth to avoid the network call.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorSkipAuth, "skip-auth", false,
		"Do not call Slack auth.test")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	out := cmd.OutOrStdout()
	allOK := diagnose(cmd.Context(), out, cfg, !doctorSkipAuth)

	fmt.Fprintln(out)
	if allOK {
		fmt.Fprintln(out, successStyle.Render("All checks passed, prmedia is ready."))
	} else {
		fmt.Fprintln(out, warnStyle.Render("Some checks failed, see above."))
	}
	return nil
}

// diagnose prints one line per check and reports whether all required checks
// passed. Secret values are never printed.
func diagnose(ctx context.Context, out io.Writer, cfg *config.Config, checkAuth bool) bool {
	allOK := true

	fmt.Fprintln(out, headerStyle.Render("=== prmedia doctor ==="))

	fmt.Fprint(out, "Slack bot token .......... ")
	if cfg.Slack.BotToken == "" {
		fmt.Fprintln(out, failStyle.Render("MISSING (set SLACK_BOT_TOKEN)"))
		allOK = false
	} else {
		fmt.Fprintln(out, "OK")
	}

	fmt.Fprint(out, "Slack channel ............ ")
	if cfg.Slack.ChannelID == "" {
		fmt.Fprintln(out, failStyle.Render("MISSING (set SLACK_CHANNEL_ID)"))
		allOK = false
	} else {
		fmt.Fprintf(out, "OK (%s)\n", cfg.Slack.ChannelID)
	}

	fmt.Fprint(out, "Slack auth ............... ")
	slackCh := notify.NewSlack(cfg.Slack, cfg.HTTPClient())
	switch {
	case !checkAuth:
		fmt.Fprintln(out, dimStyle.Render("skipped"))
	case !slackCh.IsConfigured():
		fmt.Fprintln(out, dimStyle.Render("skipped (credentials missing)"))
	default:
		team, user, err := slackCh.AuthTest(ctx)
		if err != nil {
			fmt.Fprintln(out, failStyle.Render(fmt.Sprintf("FAIL (%s)", err)))
			allOK = false
		} else {
			fmt.Fprintf(out, "OK (%s as %s)\n", team, user)
		}
	}

	fmt.Fprint(out, "Event payload ............ ")
	if cfg.GitHub.EventPath == "" {
		fmt.Fprintln(out, warnStyle.Render("not set (GITHUB_EVENT_PATH; only --pr will work)"))
	} else if pr, err := event.Load(cfg.GitHub.EventPath); err != nil {
		fmt.Fprintln(out, failStyle.Render(fmt.Sprintf("FAIL (%s)", err)))
		allOK = false
	} else {
		fmt.Fprintf(out, "OK (%q by %s)\n", pr.Title, pr.Author)
	}

	fmt.Fprint(out, "WebSocket token .......... ")
	if cfg.SecretConfigured() {
		fmt.Fprintln(out, "configured (masked in messages)")
	} else {
		fmt.Fprintln(out, dimStyle.Render("not set (snippet will be skipped)"))
	}

	fmt.Fprintf(out, "Songlink API ............. %s\n", cfg.Songlink.BaseURL)
	fmt.Fprintf(out, "NASA API ................. %s\n", cfg.NASA.APIURL)

	return allOK
}
