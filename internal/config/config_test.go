package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every bound variable so the host environment (CI runners
// set GITHUB_TOKEN, for instance) cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, e := range envs {
			t.Setenv(e, "")
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Slack.APIURL != DefaultSlackAPIURL {
		t.Fatalf("expected default Slack API URL, got %q", cfg.Slack.APIURL)
	}
	if cfg.Songlink.BaseURL != DefaultSonglinkURL {
		t.Fatalf("expected default Songlink URL, got %q", cfg.Songlink.BaseURL)
	}
	if cfg.NASA.APIURL != DefaultNASAAPIURL || cfg.NASA.DetailsURL != DefaultNASADetailsURL {
		t.Fatalf("unexpected NASA defaults: %+v", cfg.NASA)
	}
	if cfg.HTTP.Timeout != DefaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.HTTP.Timeout)
	}
	if cfg.SecretConfigured() {
		t.Fatal("expected no secret")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_BOT_TOKEN", " xoxb-123 ")
	t.Setenv("SLACK_CHANNEL_ID", "C0123")
	t.Setenv("SLACK_API_URL", "http://127.0.0.1:9999/api")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("SC_WS_TOKEN", "secret-value")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Slack.BotToken != "xoxb-123" || cfg.Slack.ChannelID != "C0123" {
		t.Fatalf("unexpected Slack config: %+v", cfg.Slack)
	}
	if cfg.Slack.APIURL != "http://127.0.0.1:9999/api/" {
		t.Fatalf("expected trailing slash on API URL, got %q", cfg.Slack.APIURL)
	}
	if cfg.GitHub.EventPath != "/tmp/event.json" {
		t.Fatalf("unexpected event path %q", cfg.GitHub.EventPath)
	}
	if !cfg.SecretConfigured() {
		t.Fatal("expected secret to be configured")
	}
	if cfg.HTTP.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.HTTP.Timeout)
	}
	if err := cfg.Validate(true); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadAlternateSecretName(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOUNDCLOUD_WS_TOKEN", "x")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SecretConfigured() {
		t.Fatal("expected SOUNDCLOUD_WS_TOKEN to be honoured")
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLACK_CHANNEL_ID", "C-ENV")

	path := filepath.Join(t.TempDir(), "prmedia.yaml")
	content := "slack:\n  bot_token: xoxb-file\n  channel_id: C-FILE\nsonglink:\n  base_url: http://songlink.test\nhttp:\n  timeout: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Slack.BotToken != "xoxb-file" {
		t.Fatalf("expected token from file, got %q", cfg.Slack.BotToken)
	}
	if cfg.Slack.ChannelID != "C-ENV" {
		t.Fatalf("expected env to win, got %q", cfg.Slack.ChannelID)
	}
	if cfg.Songlink.BaseURL != "http://songlink.test" {
		t.Fatalf("unexpected songlink URL %q", cfg.Songlink.BaseURL)
	}
	if cfg.HTTP.Timeout != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", cfg.HTTP.Timeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		requireEvent bool
		wantMissing  []string
	}{
		{
			name:         "all missing",
			requireEvent: true,
			wantMissing:  []string{"SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID", "GITHUB_EVENT_PATH"},
		},
		{
			name:         "event not required",
			cfg:          Config{Slack: SlackConfig{BotToken: "x"}},
			requireEvent: false,
			wantMissing:  []string{"SLACK_CHANNEL_ID"},
		},
		{
			name: "complete",
			cfg: Config{
				Slack:  SlackConfig{BotToken: "x", ChannelID: "C1"},
				GitHub: GitHubConfig{EventPath: "/e.json"},
			},
			requireEvent: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.requireEvent)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if strings.Join(cerr.Missing, ",") != strings.Join(tt.wantMissing, ",") {
				t.Fatalf("expected missing %v, got %v", tt.wantMissing, cerr.Missing)
			}
			if err.Error() != "missing "+strings.Join(tt.wantMissing, ", ") {
				t.Fatalf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{
		Slack:      SlackConfig{BotToken: "xoxb-real"},
		GitHub:     GitHubConfig{Token: "ghp_real"},
		SoundCloud: SoundCloudConfig{WSToken: "ws-real"},
	}
	red := cfg.Redacted()
	for _, v := range []string{red.Slack.BotToken, red.GitHub.Token, red.SoundCloud.WSToken} {
		if strings.Contains(v, "real") {
			t.Fatalf("secret leaked: %q", v)
		}
	}
	if cfg.SoundCloud.WSToken != "ws-real" {
		t.Fatal("Redacted must not modify the receiver")
	}
}
