package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/CosmoTheDev/prmedia/internal/compose"
	"github.com/CosmoTheDev/prmedia/internal/config"
)

// SlackChannel posts documents with the Web API chat.postMessage method.
type SlackChannel struct {
	cfg    config.SlackConfig
	client *http.Client
}

// NewSlack creates a SlackChannel from cfg. A nil client gets a 15-second timeout.
func NewSlack(cfg config.SlackConfig, client *http.Client) *SlackChannel {
	if cfg.APIURL == "" {
		cfg.APIURL = config.DefaultSlackAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &SlackChannel{cfg: cfg, client: client}
}

func (s *SlackChannel) Name() string       { return "slack" }
func (s *SlackChannel) IsConfigured() bool { return s.cfg.BotToken != "" && s.cfg.ChannelID != "" }

type postMessageRequest struct {
	Channel string        `json:"channel"`
	Text    string        `json:"text"`
	Blocks  []slack.Block `json:"blocks,omitempty"`
}

type postMessageResponse struct {
	slack.SlackResponse
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

func (s *SlackChannel) Send(ctx context.Context, doc compose.Document) error {
	b, err := json.Marshal(postMessageRequest{
		Channel: s.cfg.ChannelID,
		Text:    doc.Text,
		Blocks:  doc.Blocks,
	})
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL+"chat.postMessage", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("slack: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.cfg.BotToken)

	resp, err := s.client.Do(req) // #nosec G107 -- APIURL is the configured Slack Web API root
	if err != nil {
		return s.fail(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return s.fail(fmt.Sprintf("reading response: %v", err))
	}
	var out postMessageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode >= 300 {
			return s.fail(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(body), 512)))
		}
		return s.fail(fmt.Sprintf("decoding response: %v", err))
	}
	if !out.Ok {
		reason := out.Error
		if reason == "" {
			reason = fmt.Sprintf("HTTP %d without error code", resp.StatusCode)
		}
		return s.fail(reason)
	}
	slog.Info("slack: message posted", "channel", out.Channel, "ts", out.Timestamp)
	return nil
}

// AuthTest checks the bot token with auth.test and returns the team and bot
// user names.
func (s *SlackChannel) AuthTest(ctx context.Context) (team, user string, err error) {
	api := slack.New(s.cfg.BotToken,
		slack.OptionAPIURL(s.cfg.APIURL),
		slack.OptionHTTPClient(s.client),
	)
	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("slack: auth.test: %w", err)
	}
	return resp.Team, resp.User, nil
}

func (s *SlackChannel) fail(reason string) error {
	return &DeliveryError{Channel: s.Name(), Reason: reason}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
