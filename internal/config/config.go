// Package config provides configuration data structures for autolist.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the complete autolist configuration loaded from .autolist/config.yaml.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Submit  SubmitConfig  `yaml:"submit"  json:"submit"`
	Auth    AuthConfig    `yaml:"auth"    json:"auth"`
	Form    FormConfig    `yaml:"form"    json:"form"`
	Server  ServerConfig  `yaml:"server"  json:"server"`
	Log     LogConfig     `yaml:"log"     json:"log"`
}

// CatalogSource selects where reference data is fetched from.
type CatalogSource string

const (
	// CatalogSourceHTTP fetches JSON lists from an HTTP API.
	CatalogSourceHTTP CatalogSource = "http"
	// CatalogSourceSQL reads PostgreSQL reference tables.
	CatalogSourceSQL CatalogSource = "sql"
	// CatalogSourceMongo reads MongoDB reference collections.
	CatalogSourceMongo CatalogSource = "mongo"
	// CatalogSourceFile reads a local YAML fixture.
	CatalogSourceFile CatalogSource = "file"
)

// CatalogConfig configures the reference-data loader.
type CatalogConfig struct {
	// Source is one of http, sql, mongo, file (default: http).
	Source CatalogSource `yaml:"source" json:"source"`
	// URL is the base URL of the reference-data API (http source).
	URL string `yaml:"url" json:"url"`
	// DSN is the PostgreSQL connection string (sql source).
	DSN string `yaml:"dsn" json:"dsn"`
	// MongoURI is the MongoDB connection string (mongo source).
	MongoURI string `yaml:"mongo_uri" json:"mongo_uri"`
	// MongoDatabase is the database holding the reference collections.
	MongoDatabase string `yaml:"mongo_database" json:"mongo_database"`
	// File is the YAML fixture path (file source).
	File string `yaml:"file" json:"file"`
	// Timeout bounds each list fetch (default: 10s).
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// SubmitMode selects what happens to a valid draft.
type SubmitMode string

const (
	// SubmitModeLog only logs the submitted draft.
	SubmitModeLog SubmitMode = "log"
	// SubmitModeHTTP posts the draft to the create-listing API.
	SubmitModeHTTP SubmitMode = "http"
)

// SubmitConfig configures listing submission.
type SubmitConfig struct {
	// Mode is log or http (default: log).
	Mode SubmitMode `yaml:"mode" json:"mode"`
	// URL is the create-listing endpoint (http mode).
	URL string `yaml:"url" json:"url"`
	// Timeout bounds a single submission (default: 15s).
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ProviderConfig describes a social sign-in provider.
type ProviderConfig struct {
	Name        string   `yaml:"name"         json:"name"`
	Label       string   `yaml:"label"        json:"label"`
	AuthURL     string   `yaml:"auth_url"     json:"auth_url"`
	ClientID    string   `yaml:"client_id"    json:"client_id"`
	RedirectURL string   `yaml:"redirect_url" json:"redirect_url"`
	Scopes      []string `yaml:"scopes"       json:"scopes"`
}

// AuthConfig configures the login modal.
type AuthConfig struct {
	// URL is the base URL of the auth API; credentials are posted to URL/login.
	URL string `yaml:"url" json:"url"`
	// SignupURL is shown under "Don't have an account?".
	SignupURL string `yaml:"signup_url" json:"signup_url"`
	// Timeout bounds a login request (default: 10s).
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Providers lists social sign-in options.
	Providers []ProviderConfig `yaml:"providers" json:"providers"`
}

// FormConfig configures the create-listing form.
type FormConfig struct {
	// EnforceModelBrand makes the validator reject a model outside the selected brand (default: true).
	EnforceModelBrand bool `yaml:"enforce_model_brand" json:"enforce_model_brand"`
	// Currency is the price suffix (default: €).
	Currency string `yaml:"currency" json:"currency"`
	// DistanceUnit is the mileage suffix (default: km).
	DistanceUnit string `yaml:"distance_unit" json:"distance_unit"`
	// PowerUnit is the power suffix (default: Hp).
	PowerUnit string `yaml:"power_unit" json:"power_unit"`
}

// UserConfig is a development-server account.
type UserConfig struct {
	Email        string `yaml:"email"         json:"email"`
	Name         string `yaml:"name"          json:"name"`
	PasswordHash string `yaml:"password_hash" json:"password_hash"`
}

// ServerConfig configures `autolist serve`.
type ServerConfig struct {
	// Addr is the listen address (default: :8080).
	Addr string `yaml:"addr" json:"addr"`
	// JWTSecret signs issued tokens. Required to serve.
	JWTSecret string `yaml:"jwt_secret" json:"jwt_secret"`
	// TokenTTL is the lifetime of issued tokens (default: 24h).
	TokenTTL time.Duration `yaml:"token_ttl" json:"token_ttl"`
	// Users are the accounts accepted by the login endpoint.
	Users []UserConfig `yaml:"users" json:"users"`
}

// LogConfig configures file logging.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	Dir   string `yaml:"dir"   json:"dir"`
	JSON  bool   `yaml:"json"  json:"json"`
}

// Default values.
const (
	DefaultCatalogURL     = "http://localhost:8080/api"
	DefaultCatalogFile    = ".autolist/catalog.yaml"
	DefaultCatalogTimeout = 10 * time.Second
	DefaultSubmitURL      = "http://localhost:8080/api/listings"
	DefaultSubmitTimeout  = 15 * time.Second
	DefaultAuthURL        = "http://localhost:8080/api/auth"
	DefaultSignupURL      = "http://localhost:8080/signup"
	DefaultAuthTimeout    = 10 * time.Second
	DefaultServerAddr     = ":8080"
	DefaultTokenTTL       = 24 * time.Hour
	DefaultLogDir         = ".autolist/logs"
)

// DefaultProviders returns the social sign-in providers offered out of the box.
func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			Name:        "google",
			Label:       "Sign in with Google",
			AuthURL:     "https://accounts.google.com/o/oauth2/v2/auth",
			RedirectURL: "http://localhost:8080/api/auth/callback/google",
			Scopes:      []string{"openid", "email", "profile"},
		},
	}
}

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:        CatalogSourceHTTP,
			URL:           DefaultCatalogURL,
			MongoDatabase: "autolist",
			File:          DefaultCatalogFile,
			Timeout:       DefaultCatalogTimeout,
		},
		Submit: SubmitConfig{
			Mode:    SubmitModeLog,
			URL:     DefaultSubmitURL,
			Timeout: DefaultSubmitTimeout,
		},
		Auth: AuthConfig{
			URL:       DefaultAuthURL,
			SignupURL: DefaultSignupURL,
			Timeout:   DefaultAuthTimeout,
			Providers: DefaultProviders(),
		},
		Form: FormConfig{
			EnforceModelBrand: true,
			Currency:          "€",
			DistanceUnit:      "km",
			PowerUnit:         "Hp",
		},
		Server: ServerConfig{
			Addr:     DefaultServerAddr,
			TokenTTL: DefaultTokenTTL,
			Users:    []UserConfig{},
		},
		Log: LogConfig{
			Level: "info",
			Dir:   DefaultLogDir,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.Catalog.Source == "" {
		c.Catalog.Source = defaults.Catalog.Source
	}
	if c.Catalog.URL == "" {
		c.Catalog.URL = defaults.Catalog.URL
	}
	if c.Catalog.MongoDatabase == "" {
		c.Catalog.MongoDatabase = defaults.Catalog.MongoDatabase
	}
	if c.Catalog.File == "" {
		c.Catalog.File = defaults.Catalog.File
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = defaults.Catalog.Timeout
	}

	if c.Submit.Mode == "" {
		c.Submit.Mode = defaults.Submit.Mode
	}
	if c.Submit.URL == "" {
		c.Submit.URL = defaults.Submit.URL
	}
	if c.Submit.Timeout == 0 {
		c.Submit.Timeout = defaults.Submit.Timeout
	}

	if c.Auth.URL == "" {
		c.Auth.URL = defaults.Auth.URL
	}
	if c.Auth.SignupURL == "" {
		c.Auth.SignupURL = defaults.Auth.SignupURL
	}
	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = defaults.Auth.Timeout
	}
	// An explicit empty list disables social sign-in, so only nil is defaulted.
	if c.Auth.Providers == nil {
		c.Auth.Providers = defaults.Auth.Providers
	}

	if c.Form.Currency == "" {
		c.Form.Currency = defaults.Form.Currency
	}
	if c.Form.DistanceUnit == "" {
		c.Form.DistanceUnit = defaults.Form.DistanceUnit
	}
	if c.Form.PowerUnit == "" {
		c.Form.PowerUnit = defaults.Form.PowerUnit
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.TokenTTL == 0 {
		c.Server.TokenTTL = defaults.Server.TokenTTL
	}
	if c.Server.Users == nil {
		c.Server.Users = []UserConfig{}
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Dir == "" {
		c.Log.Dir = defaults.Log.Dir
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch c.Catalog.Source {
	case CatalogSourceHTTP:
		if err := validateURL("catalog.url", c.Catalog.URL); err != nil {
			errs = append(errs, err)
		}
	case CatalogSourceSQL:
		if c.Catalog.DSN == "" {
			errs = append(errs, &ValidationError{Field: "catalog.dsn", Message: "is required for the sql source"})
		}
	case CatalogSourceMongo:
		if c.Catalog.MongoURI == "" {
			errs = append(errs, &ValidationError{Field: "catalog.mongo_uri", Message: "is required for the mongo source"})
		}
	case CatalogSourceFile:
		if c.Catalog.File == "" {
			errs = append(errs, &ValidationError{Field: "catalog.file", Message: "is required for the file source"})
		}
	case "":
		// defaulted later
	default:
		errs = append(errs, &ValidationError{
			Field:   "catalog.source",
			Message: "must be 'http', 'sql', 'mongo', or 'file'",
		})
	}
	if c.Catalog.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "catalog.timeout", Message: "must be non-negative"})
	}

	switch c.Submit.Mode {
	case SubmitModeLog, "":
	case SubmitModeHTTP:
		if err := validateURL("submit.url", c.Submit.URL); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, &ValidationError{
			Field:   "submit.mode",
			Message: "must be 'log' or 'http'",
		})
	}
	if c.Submit.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "submit.timeout", Message: "must be non-negative"})
	}

	seen := make(map[string]bool)
	for i, p := range c.Auth.Providers {
		field := fmt.Sprintf("auth.providers[%d]", i)
		if p.Name == "" {
			errs = append(errs, &ValidationError{Field: field + ".name", Message: "is required"})
			continue
		}
		if seen[p.Name] {
			errs = append(errs, &ValidationError{Field: field + ".name", Message: "duplicate provider " + p.Name})
		}
		seen[p.Name] = true
		if err := validateURL(field+".auth_url", p.AuthURL); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Server.TokenTTL < 0 {
		errs = append(errs, &ValidationError{Field: "server.token_ttl", Message: "must be non-negative"})
	}
	for i, u := range c.Server.Users {
		if u.Email == "" || u.PasswordHash == "" {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("server.users[%d]", i),
				Message: "email and password_hash are required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateURL(field, raw string) *ValidationError {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: field, Message: "must be an absolute URL"}
	}
	return nil
}
