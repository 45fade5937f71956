package config

import "time"

var _ Defaults = (*OAuthConfig)(nil)

type OAuthConfig struct {
	Google GoogleConfig `mapstructure:"google"`
}

func (o OAuthConfig) Defaults() map[string]any {
	return map[string]any{}
}

var _ Defaults = (*GoogleConfig)(nil)

type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`

	// Timeout bounds calls to the identity provider; a timeout is treated
	// as a verification failure.
	Timeout time.Duration `mapstructure:"timeout"`
}

func (g GoogleConfig) Defaults() map[string]any {
	return map[string]any{
		"timeout": "10s",
	}
}
