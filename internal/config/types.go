package config

import "time"

// Config is the root configuration structure for prmedia. It is loaded once
// at startup and passed down explicitly.
type Config struct {
	Slack      SlackConfig      `mapstructure:"slack"      json:"slack"`
	GitHub     GitHubConfig     `mapstructure:"github"     json:"github"`
	SoundCloud SoundCloudConfig `mapstructure:"soundcloud" json:"soundcloud"`
	Songlink   SonglinkConfig   `mapstructure:"songlink"   json:"songlink"`
	NASA       NASAConfig       `mapstructure:"nasa"       json:"nasa"`
	HTTP       HTTPConfig       `mapstructure:"http"       json:"http"`
}

// SlackConfig holds the bot credentials used for chat.postMessage.
type SlackConfig struct {
	BotToken  string `mapstructure:"bot_token"  json:"bot_token"`
	ChannelID string `mapstructure:"channel_id" json:"channel_id"`
	// APIURL is the Web API root and must end with a slash.
	APIURL string `mapstructure:"api_url" json:"api_url"`
}

// GitHubConfig locates the pull-request event.
type GitHubConfig struct {
	// EventPath is the JSON event payload written by the CI runner.
	EventPath string `mapstructure:"event_path" json:"event_path"`
	// Token is only needed when fetching a PR through the API (notify --pr).
	Token string `mapstructure:"token" json:"token"`
	// Host allows GitHub Enterprise (e.g. github.mycompany.com).
	Host string `mapstructure:"host" json:"host"`
}

// SoundCloudConfig holds the optional WebSocket token. Only its presence
// changes the message.
type SoundCloudConfig struct {
	WSToken string `mapstructure:"ws_token" json:"ws_token"`
}

// SonglinkConfig controls the universal-link resolver.
type SonglinkConfig struct {
	BaseURL string `mapstructure:"base_url" json:"base_url"`
}

// NASAConfig controls the image library lookup.
type NASAConfig struct {
	APIURL     string `mapstructure:"api_url"     json:"api_url"`
	DetailsURL string `mapstructure:"details_url" json:"details_url"`
}

// HTTPConfig applies to every outbound call.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}
