package config

import (
	"errors"
)

var _ Defaults = (*CoreConfig)(nil)
var _ Validator = (*CoreConfig)(nil)

type CoreConfig struct {
	DB      DatabaseConfig `mapstructure:"db"`
	Domain  string         `mapstructure:"domain"`
	Port    uint           `mapstructure:"port"`
	Log     LogConfig      `mapstructure:"log"`
	Mail    MailConfig     `mapstructure:"mail"`
	Storage StorageConfig  `mapstructure:"storage"`
	OAuth   OAuthConfig    `mapstructure:"oauth"`
	Auth    AuthConfig     `mapstructure:"auth"`
}

func (c CoreConfig) Validate() error {
	if c.Domain == "" {
		return errors.New("core.domain is required")
	}
	if c.Port == 0 {
		return errors.New("core.port is required")
	}

	return nil
}

func (c CoreConfig) Defaults() map[string]any {
	return map[string]any{
		"domain": "morpionai.com",
		"port":   5001,
	}
}
