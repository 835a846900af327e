package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	autolisterrors "github.com/autolist/autolist/internal/errors"
	"github.com/autolist/autolist/internal/listing"
)

// newTestRoot creates a fresh command hierarchy for testing.
// This is necessary because Cobra commands maintain state between runs.
// The root has no RunE so that running it without arguments shows help
// instead of opening the TUI.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "autolist",
		Short: "Autolist - create car listings from the terminal",
		Long: `Autolist is a terminal client for publishing car listings.

It loads brands, models and the other reference lists.`,
		PersistentPreRunE: loadDotEnv,
		SilenceUsage:      true,
	}
	root.Version = "test"
	root.SetVersionTemplate("autolist {{.Version}}\n")
	addPersistentFlags(root)

	initC := &cobra.Command{Use: "init", Short: "Initialize an autolist workspace", RunE: runInit}
	addInitFlags(initC)
	root.AddCommand(initC)

	catalogC := &cobra.Command{Use: "catalog [kind]", Short: "Print the reference data", Args: cobra.MaximumNArgs(1), RunE: runCatalog}
	addCatalogFlags(catalogC)
	root.AddCommand(catalogC)

	validateC := &cobra.Command{Use: "validate <draft.yaml>", Short: "Validate a listing draft file", Args: cobra.ExactArgs(1), RunE: runValidate}
	addValidateFlags(validateC)
	root.AddCommand(validateC)

	serveC := &cobra.Command{Use: "serve", Short: "Run the development API server", RunE: runServe}
	serveC.Flags().String("addr", "", "Listen address")
	serveC.Flags().String("catalog", "", "Catalog fixture to serve")
	serveC.Flags().Bool("demo", false, "Serve the built-in demo catalog")
	root.AddCommand(serveC)

	versionC := &cobra.Command{Use: "version", Short: "Show version information", RunE: runVersion}
	versionC.Flags().Bool("json", false, "Print version information as JSON")
	root.AddCommand(versionC)

	return root
}

// execute runs args against a fresh command tree and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd := newTestRoot()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// initWorkspace runs "autolist init" in a temporary directory.
func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if out, err := execute(t, "init", "-C", dir); err != nil {
		t.Fatalf("init failed: %v\n%s", err, out)
	}
	return dir
}

func writeDraft(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write draft: %v", err)
	}
	return path
}

const validDraft = `title: Reliable family car
brand: toyota
model: 1
mileage: 120000
price: 8999.50
power: 110
previous_owners: 2
door_count: 5
seat_count: 5
car_type: 2
condition: 2
transmission: 1
fuel_type: 1
color: 3
`

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput string
	}{
		{
			name:       "no args shows help",
			args:       []string{},
			wantErr:    false,
			wantOutput: "Autolist is a terminal client",
		},
		{
			name:       "help flag",
			args:       []string{"--help"},
			wantErr:    false,
			wantOutput: "Available Commands:",
		},
		{
			name:       "version flag",
			args:       []string{"--version"},
			wantErr:    false,
			wantOutput: "autolist test",
		},
		{
			name:    "unknown command",
			args:    []string{"unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantOutput != "" && !strings.Contains(out, tt.wantOutput) {
				t.Errorf("Output = %q, want to contain %q", out, tt.wantOutput)
			}
		})
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "-C", dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "autolist initialized successfully!") {
		t.Errorf("Output = %q, want success message", out)
	}

	for _, name := range []string{"config.yaml", "catalog.yaml", "version.json"} {
		if _, err := os.Stat(filepath.Join(dir, ".autolist", name)); err != nil {
			t.Errorf("expected .autolist/%s to exist: %v", name, err)
		}
	}

	cfg, err := config.Load(filepath.Join(dir, config.DefaultConfigPath))
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Catalog.Source != config.CatalogSourceFile {
		t.Errorf("Catalog.Source = %q, want file", cfg.Catalog.Source)
	}
	if len(cfg.Server.JWTSecret) != 64 {
		t.Errorf("expected a generated secret, got %q", cfg.Server.JWTSecret)
	}

	fixture, err := catalog.ReadFile(filepath.Join(dir, config.DefaultCatalogFile))
	if err != nil {
		t.Fatalf("fixture does not load: %v", err)
	}
	if len(fixture.Brands) != len(catalog.Demo().Brands) {
		t.Errorf("fixture has %d brands, want the demo data", len(fixture.Brands))
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := initWorkspace(t)

	if _, err := execute(t, "init", "-C", dir); err == nil {
		t.Fatal("second init should fail without --force")
	}

	out, err := execute(t, "init", "-C", dir, "--force")
	if err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out, "force mode") {
		t.Errorf("Output = %q, want force mode", out)
	}
}

func TestInitCommand_User(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "init", "-C", dir, "--user", "ada@example.com", "--name", "Ada", "--password", "secret")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.DefaultConfigPath))
	if err != nil {
		t.Fatalf("config does not load: %v", err)
	}
	if len(cfg.Server.Users) != 1 {
		t.Fatalf("expected one user, got %d", len(cfg.Server.Users))
	}
	u := cfg.Server.Users[0]
	if u.Email != "ada@example.com" || u.Name != "Ada" {
		t.Errorf("unexpected user %+v", u)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestInitCommand_PromptsForPassword(t *testing.T) {
	dir := t.TempDir()
	buf := new(bytes.Buffer)
	cmd := newTestRoot()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("hunter2\n"))
	cmd.SetArgs([]string{"init", "-C", dir, "--user", "ada@example.com"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Password for ada@example.com") {
		t.Errorf("Output = %q, want a password prompt", buf.String())
	}

	cfg, err := config.Load(filepath.Join(dir, config.DefaultConfigPath))
	if err != nil {
		t.Fatalf("config does not load: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.Server.Users[0].PasswordHash), []byte("hunter2")); err != nil {
		t.Errorf("prompted password was not stored: %v", err)
	}
}

func TestInitCommand_UserWithoutPassword(t *testing.T) {
	if _, err := execute(t, "init", "-C", t.TempDir(), "--user", "ada@example.com"); err == nil {
		t.Error("init should fail when no password is given")
	}
}

func TestCatalogCommand(t *testing.T) {
	dir := initWorkspace(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    []string
		notWant []string
	}{
		{
			name: "summary",
			args: []string{"catalog"},
			want: []string{"brands", "models", "colors"},
		},
		{
			name: "brands",
			args: []string{"catalog", "brands"},
			want: []string{"toyota", "Toyota", "Honda"},
		},
		{
			name:    "models of one brand",
			args:    []string{"catalog", "models", "--brand", "honda"},
			want:    []string{"Civic", "Accord"},
			notWant: []string{"Corolla"},
		},
		{
			name: "singular kind",
			args: []string{"catalog", "color"},
			want: []string{"Silver", "#C0C0C0"},
		},
		{
			name: "yaml",
			args: []string{"catalog", "fuel-types", "--yaml"},
			want: []string{"fuel_types:", "Diesel"},
		},
		{
			name:    "unknown kind",
			args:    []string{"catalog", "wheels"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append(tt.args, "-C", dir)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Output = %q, want to contain %q", out, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("Output = %q, should not contain %q", out, w)
				}
			}
		})
	}
}

func TestCatalogCommand_FixtureFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars.yaml")
	c := &catalog.Catalog{Brands: []catalog.Brand{{ID: "skoda", Name: "Škoda"}}}
	if err := catalog.WriteFile(path, c); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "catalog", "brands", "-C", t.TempDir(), "--catalog", path)
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	if !strings.Contains(out, "Škoda") {
		t.Errorf("Output = %q, want the fixture brand", out)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := initWorkspace(t)

	out, err := execute(t, "validate", writeDraft(t, validDraft), "-C", dir)
	if err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	if !strings.Contains(out, "is a valid listing") {
		t.Errorf("Output = %q, want confirmation", out)
	}
}

func TestValidateCommand_MissingField(t *testing.T) {
	dir := initWorkspace(t)
	draft := strings.Replace(validDraft, "price: 8999.50\n", "", 1)

	_, err := execute(t, "validate", writeDraft(t, draft), "-C", dir)
	if err == nil {
		t.Fatal("draft without a price should be rejected")
	}
	appErr, ok := err.(*autolisterrors.AppError)
	if !ok {
		t.Fatalf("expected an AppError, got %T", err)
	}
	if len(appErr.Details) != 1 || appErr.Details["price"] == "" {
		t.Errorf("expected only price to fail, got %v", appErr.Details)
	}
}

func TestValidateCommand_NonNumeric(t *testing.T) {
	dir := initWorkspace(t)
	draft := strings.Replace(validDraft, "mileage: 120000", "mileage: lots", 1)

	_, err := execute(t, "validate", writeDraft(t, draft), "-C", dir)
	if err == nil || !strings.Contains(err.Error(), "mileage") {
		t.Errorf("expected a mileage error, got %v", err)
	}
}

func TestValidateCommand_CheckCatalog(t *testing.T) {
	dir := initWorkspace(t)
	draft := strings.Replace(validDraft, "brand: toyota", "brand: honda", 1)

	if _, err := execute(t, "validate", writeDraft(t, draft), "-C", dir); err != nil {
		t.Fatalf("without --check-catalog the draft should pass: %v", err)
	}

	_, err := execute(t, "validate", writeDraft(t, draft), "-C", dir, "--check-catalog")
	if err == nil || !strings.Contains(err.Error(), "model") {
		t.Errorf("expected a model error, got %v", err)
	}
}

func TestValidateCommand_Submit(t *testing.T) {
	dir := initWorkspace(t)

	out, err := execute(t, "validate", writeDraft(t, validDraft), "-C", dir, "--submit")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !strings.Contains(out, `Listing "Reliable family car" submitted.`) {
		t.Errorf("Output = %q, want submit confirmation", out)
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	if _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing draft should fail")
	}
}

func TestVersionCommand(t *testing.T) {
	dir := initWorkspace(t)

	out, err := execute(t, "version", "-C", dir)
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"autolist " + Version, "Go:", "Workspace:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output = %q, want to contain %q", out, want)
		}
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	if !strings.Contains(out, `"go_version"`) {
		t.Errorf("Output = %q, want JSON", out)
	}
}

func TestServeCommand_RequiresSecret(t *testing.T) {
	t.Setenv("AUTOLIST_SERVER_JWT_SECRET", "")

	_, err := execute(t, "serve", "-C", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("expected a jwt_secret error, got %v", err)
	}
}

func TestServeCatalog(t *testing.T) {
	dir := initWorkspace(t)
	ws := &workspace{dir: dir, configPath: filepath.Join(dir, config.DefaultConfigPath)}

	serveCmd := func(args ...string) *cobra.Command {
		c := &cobra.Command{Use: "serve"}
		c.Flags().String("catalog", "", "")
		c.Flags().Bool("demo", false, "")
		if err := c.Flags().Parse(args); err != nil {
			t.Fatal(err)
		}
		return c
	}

	t.Run("demo flag", func(t *testing.T) {
		cfg := config.NewConfig()
		c, err := serveCatalog(t.Context(), serveCmd("--demo"), ws, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if len(c.Models) != len(catalog.Demo().Models) {
			t.Errorf("expected demo data, got %d models", len(c.Models))
		}
	})

	t.Run("http source falls back to the fixture", func(t *testing.T) {
		fixture := filepath.Join(dir, "small.yaml")
		if err := catalog.WriteFile(fixture, &catalog.Catalog{Brands: []catalog.Brand{{ID: "fiat", Name: "Fiat"}}}); err != nil {
			t.Fatal(err)
		}
		cfg := config.NewConfig()
		cfg.Catalog.File = fixture

		c, err := serveCatalog(t.Context(), serveCmd(), ws, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if len(c.Brands) != 1 || c.Brands[0].ID != "fiat" {
			t.Errorf("expected the fixture, got %+v", c.Brands)
		}
	})

	t.Run("http source without fixture serves demo", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Catalog.File = filepath.Join(dir, "missing.yaml")

		c, err := serveCatalog(t.Context(), serveCmd(), ws, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if len(c.Brands) != len(catalog.Demo().Brands) {
			t.Errorf("expected demo data, got %d brands", len(c.Brands))
		}
	})

	t.Run("file source", func(t *testing.T) {
		cfg, err := ws.loadConfig()
		if err != nil {
			t.Fatal(err)
		}
		c, err := serveCatalog(t.Context(), serveCmd(), ws, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if len(c.Colors) != len(catalog.Demo().Colors) {
			t.Errorf("expected the workspace fixture, got %d colors", len(c.Colors))
		}
	})
}

func TestServerOptions(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Server.JWTSecret = "s3cret"
	cfg.Server.Users = []config.UserConfig{{Email: "ada@example.com"}}

	opts := serverOptions(cfg, catalog.Demo())
	if string(opts.Secret) != "s3cret" || len(opts.Users) != 1 {
		t.Errorf("unexpected options %+v", opts)
	}
	if !opts.EnforceModelBrand {
		t.Error("model/brand consistency should follow the form config")
	}
}

func TestTUIOptions(t *testing.T) {
	src := catalog.StaticSource{Catalog: catalog.Demo()}

	t.Run("log mode", func(t *testing.T) {
		cfg := config.NewConfig()
		opts := tuiOptions(cfg, src)
		if opts.RequireLogin {
			t.Error("log mode should not require sign in")
		}
		if opts.Submitter != nil {
			t.Errorf("log mode should use the default submitter, got %T", opts.Submitter)
		}
		if opts.Auth == nil {
			t.Error("auth.url is set, an authenticator is expected")
		}
		if len(opts.Providers) != len(cfg.Auth.Providers) {
			t.Errorf("expected %d providers, got %d", len(cfg.Auth.Providers), len(opts.Providers))
		}
	})

	t.Run("http mode", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Submit.Mode = config.SubmitModeHTTP
		opts := tuiOptions(cfg, src)
		if !opts.RequireLogin {
			t.Error("http mode should require sign in")
		}
		if _, ok := opts.Submitter.(*listing.HTTPSubmitter); !ok {
			t.Errorf("expected an HTTP submitter, got %T", opts.Submitter)
		}
	})
}

func TestApplySourceFlags(t *testing.T) {
	ws := &workspace{dir: "/work"}
	c := &cobra.Command{Use: "new"}
	addNewFlags(c)
	if err := c.Flags().Parse([]string{"--catalog", "cars.yaml"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	if err := applySourceFlags(c, ws, cfg); err != nil {
		t.Fatalf("applySourceFlags() error = %v", err)
	}
	if cfg.Catalog.Source != config.CatalogSourceFile {
		t.Errorf("Source = %q, want file", cfg.Catalog.Source)
	}
	if cfg.Catalog.File != filepath.Join("/work", "cars.yaml") {
		t.Errorf("File = %q, want it resolved against the workspace", cfg.Catalog.File)
	}

	bad := &cobra.Command{Use: "new"}
	addNewFlags(bad)
	if err := bad.Flags().Parse([]string{"--source", "ftp"}); err != nil {
		t.Fatal(err)
	}
	if err := applySourceFlags(bad, ws, config.NewConfig()); err == nil {
		t.Error("unknown source should be rejected")
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		cfg  config.CatalogConfig
		want string
	}{
		{config.CatalogConfig{Source: config.CatalogSourceFile, File: "/x/cars.yaml"}, "file cars.yaml"},
		{config.CatalogConfig{Source: config.CatalogSourceSQL}, "postgres"},
		{config.CatalogConfig{Source: config.CatalogSourceMongo, MongoDatabase: "autolist"}, "mongo autolist"},
		{config.CatalogConfig{Source: config.CatalogSourceHTTP, URL: "http://api"}, "http://api"},
	}
	for _, tt := range tests {
		if got := sourceName(tt.cfg); got != tt.want {
			t.Errorf("sourceName(%v) = %q, want %q", tt.cfg.Source, got, tt.want)
		}
	}
}

func TestFormatError(t *testing.T) {
	appErr := autolisterrors.ListingInvalid(map[string]string{"price": "Price is required"})
	out := formatError(appErr)
	if !strings.Contains(out, "price: Price is required") {
		t.Errorf("formatError() = %q, want details", out)
	}
	if !strings.HasPrefix(formatError(os.ErrNotExist), "Error: ") {
		t.Error("plain errors should be prefixed")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTOLIST_TEST_DOTENV=loaded\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTOLIST_TEST_DOTENV", "")
	os.Unsetenv("AUTOLIST_TEST_DOTENV")

	if _, err := execute(t, "version", "-C", dir); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := os.Getenv("AUTOLIST_TEST_DOTENV"); got != "loaded" {
		t.Errorf("AUTOLIST_TEST_DOTENV = %q, want loaded", got)
	}
}
