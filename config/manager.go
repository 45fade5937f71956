package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MORPIONAI_"

var (
	configFilePaths = []string{
		"/etc/morpionai/account/config.yaml",
		"/etc/morpionai/account/config.yml",
		"$HOME/.morpionai/account/config.yaml",
		"$HOME/.morpionai/account/config.yml",
		"./account.yaml",
		"./account.yml",
	}
	errConfigFileNotFound = errors.New("config file not found")
)

var _ Manager = (*ManagerDefault)(nil)

type ManagerDefault struct {
	config     *koanf.Koanf
	root       *Config
	configFile string
}

func NewManager() (*ManagerDefault, error) {
	k, configFile, err := newConfig()
	if err != nil && err != errConfigFileNotFound {
		return nil, err
	}

	return &ManagerDefault{
		config:     k,
		configFile: configFile,
	}, nil
}

func newConfig() (*koanf.Koanf, string, error) {
	k := koanf.New(".")

	var configFile string
	for _, path := range configFilePaths {
		expanded := os.ExpandEnv(path)
		if _, err := os.Stat(expanded); err == nil {
			configFile = expanded
			break
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, "", err
		}
	}

	// Environment overrides file: MORPIONAI_CORE_DB_HOST -> core.db.host.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, "", err
	}

	if configFile == "" {
		return k, "", errConfigFileNotFound
	}

	return k, configFile, nil
}

func (m *ManagerDefault) Init() error {
	m.root = &Config{}

	err := m.setDefaultsForObject(&m.root.Core, "core")
	if err != nil {
		return err
	}

	err = m.config.UnmarshalWithConf("", &m.root, koanf.UnmarshalConf{
		Tag: "mapstructure",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
			Metadata:         nil,
			Result:           &m.root,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return err
	}

	return m.validateObject(m.root)
}

func (m *ManagerDefault) Config() *Config {
	if m == nil {
		return nil
	}
	return m.root
}

func (m *ManagerDefault) ConfigFile() string {
	return m.configFile
}

func (m *ManagerDefault) setDefaultsForObject(obj interface{}, prefix string) error {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	if setter, ok := obj.(Defaults); ok {
		if err := m.applyDefaults(setter, prefix); err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)
		fieldType := objType.Field(i)

		if !field.CanInterface() {
			continue
		}

		mapstructureTag := fieldType.Tag.Get("mapstructure")

		newPrefix := prefix
		if mapstructureTag != "" && mapstructureTag != "-" {
			if newPrefix != "" {
				newPrefix += "."
			}
			newPrefix += mapstructureTag
		}

		if field.Kind() == reflect.Struct || (field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct) {
			if field.Kind() == reflect.Ptr {
				if field.IsNil() {
					continue
				}
				if err := m.setDefaultsForObject(field.Interface(), newPrefix); err != nil {
					return err
				}
				continue
			}
			if err := m.setDefaultsForObject(field.Addr().Interface(), newPrefix); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *ManagerDefault) validateObject(obj interface{}) error {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	if validator, ok := obj.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)

		if !field.CanInterface() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := m.validateObject(field.Addr().Interface()); err != nil {
				return err
			}
		}
		if field.Kind() == reflect.Ptr && !field.IsNil() && field.Type().Elem().Kind() == reflect.Struct {
			if err := m.validateObject(field.Interface()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *ManagerDefault) applyDefaults(setter Defaults, prefix string) error {
	for key, value := range setter.Defaults() {
		fullKey := key
		if prefix != "" {
			fullKey = fmt.Sprintf("%s.%s", prefix, key)
		}
		if !m.config.Exists(fullKey) {
			if err := m.config.Set(fullKey, value); err != nil {
				return err
			}
		}
	}

	return nil
}
