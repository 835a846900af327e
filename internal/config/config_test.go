package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Catalog.Source != CatalogSourceHTTP {
		t.Errorf("expected catalog source %q, got %q", CatalogSourceHTTP, cfg.Catalog.Source)
	}
	if cfg.Catalog.Timeout != DefaultCatalogTimeout {
		t.Errorf("expected catalog timeout %v, got %v", DefaultCatalogTimeout, cfg.Catalog.Timeout)
	}
	if cfg.Submit.Mode != SubmitModeLog {
		t.Errorf("expected submit mode %q, got %q", SubmitModeLog, cfg.Submit.Mode)
	}
	if !cfg.Form.EnforceModelBrand {
		t.Error("expected EnforceModelBrand to be true by default")
	}
	if cfg.Form.Currency != "€" || cfg.Form.DistanceUnit != "km" || cfg.Form.PowerUnit != "Hp" {
		t.Errorf("unexpected form units: %+v", cfg.Form)
	}
	if len(cfg.Auth.Providers) != 1 || cfg.Auth.Providers[0].Name != "google" {
		t.Errorf("expected google provider by default, got %+v", cfg.Auth.Providers)
	}
	if cfg.Server.Users == nil {
		t.Error("expected Users to be initialized, got nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Catalog.Source != CatalogSourceHTTP {
		t.Errorf("expected catalog source %q, got %q", CatalogSourceHTTP, cfg.Catalog.Source)
	}
	if cfg.Catalog.URL != DefaultCatalogURL {
		t.Errorf("expected catalog url %q, got %q", DefaultCatalogURL, cfg.Catalog.URL)
	}
	if cfg.Submit.Timeout != DefaultSubmitTimeout {
		t.Errorf("expected submit timeout %v, got %v", DefaultSubmitTimeout, cfg.Submit.Timeout)
	}
	if cfg.Auth.Providers == nil {
		t.Error("expected providers to be defaulted")
	}
	if cfg.Server.TokenTTL != DefaultTokenTTL {
		t.Errorf("expected token ttl %v, got %v", DefaultTokenTTL, cfg.Server.TokenTTL)
	}
	if cfg.Log.Dir != DefaultLogDir {
		t.Errorf("expected log dir %q, got %q", DefaultLogDir, cfg.Log.Dir)
	}
}

func TestConfig_ApplyDefaults_KeepsEmptyProviders(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{Providers: []ProviderConfig{}}}
	cfg.ApplyDefaults()

	if len(cfg.Auth.Providers) != 0 {
		t.Errorf("explicit empty provider list should be kept, got %d", len(cfg.Auth.Providers))
	}
}

func TestConfig_ApplyDefaults_PreservesValues(t *testing.T) {
	cfg := &Config{
		Catalog: CatalogConfig{Source: CatalogSourceFile, File: "fixtures.yaml", Timeout: time.Second},
		Form:    FormConfig{Currency: "$"},
	}
	cfg.ApplyDefaults()

	if cfg.Catalog.Source != CatalogSourceFile {
		t.Errorf("expected source preserved, got %q", cfg.Catalog.Source)
	}
	if cfg.Catalog.File != "fixtures.yaml" {
		t.Errorf("expected file preserved, got %q", cfg.Catalog.File)
	}
	if cfg.Catalog.Timeout != time.Second {
		t.Errorf("expected timeout preserved, got %v", cfg.Catalog.Timeout)
	}
	if cfg.Form.Currency != "$" {
		t.Errorf("expected currency preserved, got %q", cfg.Form.Currency)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{
			name:      "unknown catalog source",
			mutate:    func(c *Config) { c.Catalog.Source = "redis" },
			wantField: "catalog.source",
		},
		{
			name:      "relative catalog url",
			mutate:    func(c *Config) { c.Catalog.URL = "/api" },
			wantField: "catalog.url",
		},
		{
			name:      "sql without dsn",
			mutate:    func(c *Config) { c.Catalog.Source = CatalogSourceSQL },
			wantField: "catalog.dsn",
		},
		{
			name:      "mongo without uri",
			mutate:    func(c *Config) { c.Catalog.Source = CatalogSourceMongo },
			wantField: "catalog.mongo_uri",
		},
		{
			name:      "negative catalog timeout",
			mutate:    func(c *Config) { c.Catalog.Timeout = -time.Second },
			wantField: "catalog.timeout",
		},
		{
			name:      "unknown submit mode",
			mutate:    func(c *Config) { c.Submit.Mode = "email" },
			wantField: "submit.mode",
		},
		{
			name: "http submit without url",
			mutate: func(c *Config) {
				c.Submit.Mode = SubmitModeHTTP
				c.Submit.URL = ""
			},
			wantField: "submit.url",
		},
		{
			name: "duplicate provider",
			mutate: func(c *Config) {
				c.Auth.Providers = append(c.Auth.Providers, c.Auth.Providers[0])
			},
			wantField: "auth.providers[1].name",
		},
		{
			name: "user without hash",
			mutate: func(c *Config) {
				c.Server.Users = []UserConfig{{Email: "a@b.c"}}
			},
			wantField: "server.users[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			found := false
			for _, ve := range verrs {
				if ve.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q, got %v", tt.wantField, err)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var empty ValidationErrors
	if empty.Error() != "" {
		t.Error("empty errors should render empty string")
	}

	one := ValidationErrors{{Field: "a", Message: "bad"}}
	if one.Error() != "a: bad" {
		t.Errorf("unexpected single error %q", one.Error())
	}

	two := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	if !strings.HasPrefix(two.Error(), "multiple validation errors:") {
		t.Errorf("unexpected multi error %q", two.Error())
	}
}
