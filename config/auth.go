package config

import (
	"errors"
	"time"
)

var _ Defaults = (*AuthConfig)(nil)
var _ Validator = (*AuthConfig)(nil)

type AuthConfig struct {
	// TokenSecret signs access tokens. Anyone holding it can mint valid
	// credentials.
	TokenSecret string `mapstructure:"token_secret"`

	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	SessionLifetime time.Duration `mapstructure:"session_lifetime"`
	OTPTTL          time.Duration `mapstructure:"otp_ttl"`
}

func (a AuthConfig) Validate() error {
	if a.TokenSecret == "" {
		return errors.New("core.auth.token_secret is required")
	}

	return nil
}

func (a AuthConfig) Defaults() map[string]any {
	return map[string]any{
		"access_token_ttl": "15m",
		"session_lifetime": "2160h", // 90 days
		"otp_ttl":          "10m",
	}
}
