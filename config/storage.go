package config

import (
	"errors"
)

type StorageConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

var _ Validator = (*S3Config)(nil)
var _ Defaults = (*S3Config)(nil)

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`

	// PublicBaseURL is the URL prefix under which uploaded objects are
	// served, typically a CDN in front of the bucket.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

func (s S3Config) Defaults() map[string]any {
	return map[string]any{
		"bucket":          "",
		"endpoint":        "",
		"region":          "us-east-1",
		"access_key":      "",
		"secret_key":      "",
		"public_base_url": "",
	}
}

func (s S3Config) Validate() error {
	// Storage is optional; profile image endpoints fail at request time
	// when it is unconfigured.
	if s.Bucket == "" {
		return nil
	}
	if s.Region == "" {
		return errors.New("core.storage.s3.region is required")
	}
	if s.AccessKey == "" {
		return errors.New("core.storage.s3.access_key is required")
	}
	if s.SecretKey == "" {
		return errors.New("core.storage.s3.secret_key is required")
	}
	return nil
}
