// Package config provides configuration loading and management for autolist.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the working directory.
	DefaultConfigPath = ".autolist/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "AUTOLIST"
)

// ErrNotFound is wrapped by LoadError when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working directory.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{
			Path:    path,
			Message: "config file not found",
			Err:     ErrNotFound,
		}
	}

	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	cfg := NewConfig()
	// Lists from the file replace the defaults instead of merging into them.
	cfg.Auth.Providers = nil
	cfg.Server.Users = nil
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	return finish(path, cfg)
}

// LoadOrDefault behaves like LoadConfig but falls back to the built-in
// defaults, still honoring environment overrides, when the file is missing.
func (l *Loader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if path == "" {
		path = DefaultConfigPath
	}
	return finish(path, NewConfig())
}

func finish(path string, cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}
	return cfg, nil
}

// envOverride maps one AUTOLIST_* variable onto a config field.
type envOverride struct {
	key   string
	apply func(cfg *Config, v string)
}

func durationSetter(dst func(cfg *Config) *time.Duration) func(*Config, string) {
	return func(cfg *Config, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			*dst(cfg) = d
		}
	}
}

var envOverrides = []envOverride{
	{"CATALOG_SOURCE", func(c *Config, v string) { c.Catalog.Source = CatalogSource(v) }},
	{"CATALOG_URL", func(c *Config, v string) { c.Catalog.URL = v }},
	{"CATALOG_DSN", func(c *Config, v string) { c.Catalog.DSN = v }},
	{"CATALOG_MONGO_URI", func(c *Config, v string) { c.Catalog.MongoURI = v }},
	{"CATALOG_MONGO_DATABASE", func(c *Config, v string) { c.Catalog.MongoDatabase = v }},
	{"CATALOG_FILE", func(c *Config, v string) { c.Catalog.File = v }},
	{"CATALOG_TIMEOUT", durationSetter(func(c *Config) *time.Duration { return &c.Catalog.Timeout })},
	{"SUBMIT_MODE", func(c *Config, v string) { c.Submit.Mode = SubmitMode(v) }},
	{"SUBMIT_URL", func(c *Config, v string) { c.Submit.URL = v }},
	{"SUBMIT_TIMEOUT", durationSetter(func(c *Config) *time.Duration { return &c.Submit.Timeout })},
	{"AUTH_URL", func(c *Config, v string) { c.Auth.URL = v }},
	{"AUTH_SIGNUP_URL", func(c *Config, v string) { c.Auth.SignupURL = v }},
	{"FORM_ENFORCE_MODEL_BRAND", func(c *Config, v string) { c.Form.EnforceModelBrand = parseBool(v) }},
	{"SERVER_ADDR", func(c *Config, v string) { c.Server.Addr = v }},
	{"SERVER_JWT_SECRET", func(c *Config, v string) { c.Server.JWTSecret = v }},
	{"SERVER_TOKEN_TTL", durationSetter(func(c *Config) *time.Duration { return &c.Server.TokenTTL })},
	{"LOG_LEVEL", func(c *Config, v string) { c.Log.Level = v }},
	{"LOG_DIR", func(c *Config, v string) { c.Log.Dir = v }},
	{"LOG_JSON", func(c *Config, v string) { c.Log.JSON = parseBool(v) }},
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	for _, o := range envOverrides {
		if v := os.Getenv(EnvPrefix + "_" + o.key); v != "" {
			o.apply(cfg, v)
		}
	}
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook decodes by yaml tag so file keys and struct tags agree,
// and composes the duration hook with our custom string types.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToCustomTypeHookFunc(),
	)
}

func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		switch to {
		case reflect.TypeOf(CatalogSource("")):
			return CatalogSource(strings.ToLower(data.(string))), nil
		case reflect.TypeOf(SubmitMode("")):
			return SubmitMode(strings.ToLower(data.(string))), nil
		}

		return data, nil
	}
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadOrDefault is a convenience wrapper around Loader.LoadOrDefault.
func LoadOrDefault(path string) (*Config, error) {
	return NewLoader().LoadOrDefault(path)
}
