package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Auth      AuthConfig
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// SlackConfig is optional. Announcements are only posted when both values are set.
type SlackConfig struct {
	Token     string
	ChannelID string
}

func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

// TursoConfig selects the remote database when PrimaryURL is set.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
