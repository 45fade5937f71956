package config

type Config struct {
	Core CoreConfig `mapstructure:"core"`
}

// Defaults is implemented by config sections that carry default values.
type Defaults interface {
	Defaults() map[string]any
}

// Validator is implemented by config sections that carry required fields.
type Validator interface {
	Validate() error
}

type Manager interface {
	Init() error
	Config() *Config
	ConfigFile() string
}
