package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSlackAPIURL    = "https://slack.com/api/"
	DefaultSonglinkURL    = "https://api.song.link/v1-alpha.1"
	DefaultNASAAPIURL     = "https://images-api.nasa.gov"
	DefaultNASADetailsURL = "https://images.nasa.gov/details/"
	DefaultHTTPTimeout    = 15 * time.Second
)

// envBindings maps config keys to the environment variables CI provides.
// The first name listed is the one reported when a required value is missing.
var envBindings = map[string][]string{
	"slack.bot_token":     {"SLACK_BOT_TOKEN"},
	"slack.channel_id":    {"SLACK_CHANNEL_ID"},
	"slack.api_url":       {"SLACK_API_URL"},
	"github.event_path":   {"GITHUB_EVENT_PATH"},
	"github.token":        {"GITHUB_TOKEN"},
	"github.host":         {"GITHUB_HOST"},
	"soundcloud.ws_token": {"SC_WS_TOKEN", "SOUNDCLOUD_WS_TOKEN"},
	"songlink.base_url":   {"SONGLINK_BASE_URL"},
	"nasa.api_url":        {"NASA_API_URL"},
	"nasa.details_url":    {"NASA_DETAILS_URL"},
	"http.timeout":        {"HTTP_TIMEOUT"},
}

// Load reads configuration from the environment and, when configPath is set,
// from that file. Environment variables win over file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	normalise(&cfg)
	return &cfg, nil
}

// setDefaults populates viper with the public service endpoints.
func setDefaults(v *viper.Viper) {
	v.SetDefault("slack.api_url", DefaultSlackAPIURL)
	v.SetDefault("songlink.base_url", DefaultSonglinkURL)
	v.SetDefault("nasa.api_url", DefaultNASAAPIURL)
	v.SetDefault("nasa.details_url", DefaultNASADetailsURL)
	v.SetDefault("http.timeout", DefaultHTTPTimeout)
}

func normalise(cfg *Config) {
	cfg.Slack.BotToken = strings.TrimSpace(cfg.Slack.BotToken)
	cfg.Slack.ChannelID = strings.TrimSpace(cfg.Slack.ChannelID)
	if cfg.Slack.APIURL != "" && !strings.HasSuffix(cfg.Slack.APIURL, "/") {
		cfg.Slack.APIURL += "/"
	}
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = DefaultHTTPTimeout
	}
}

// Validate reports every missing required value at once. The event path is
// only required when the PR is read from the runner's event file.
func (c *Config) Validate(requireEvent bool) error {
	var missing []string
	if c.Slack.BotToken == "" {
		missing = append(missing, envName("slack.bot_token"))
	}
	if c.Slack.ChannelID == "" {
		missing = append(missing, envName("slack.channel_id"))
	}
	if requireEvent && c.GitHub.EventPath == "" {
		missing = append(missing, envName("github.event_path"))
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// SecretConfigured reports whether the SoundCloud WebSocket token is set.
func (c *Config) SecretConfigured() bool {
	return c.SoundCloud.WSToken != ""
}

// HTTPClient returns the client shared by every outbound call.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTP.Timeout}
}

// Redacted returns a copy with secrets replaced, safe to print.
func (c Config) Redacted() Config {
	if c.Slack.BotToken != "" {
		c.Slack.BotToken = "xoxb-***"
	}
	if c.GitHub.Token != "" {
		c.GitHub.Token = "ghp-***"
	}
	if c.SoundCloud.WSToken != "" {
		c.SoundCloud.WSToken = "***"
	}
	return c
}

func envName(key string) string {
	return envBindings[key][0]
}

// ConfigError lists required settings that were not supplied.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing " + strings.Join(e.Missing, ", ")
}
