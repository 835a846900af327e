package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/logging"
	"github.com/autolist/autolist/internal/session"
	"github.com/autolist/autolist/internal/tui"
	"github.com/autolist/autolist/internal/version"
)

// newCmd represents the new command.
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Open the create-listing form",
	Long: `Open the create-listing form in the terminal.

Reference data is loaded from the configured catalog source. Lists that
fail to load stay empty and a warning is shown above the form.

Examples:
  autolist                 # Same as "autolist new"
  autolist new -C ~/cars   # Use the workspace in ~/cars
  autolist new --source file --catalog ./catalog.yaml`,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	addNewFlags(newCmd)
	addNewFlags(rootCmd)
}

func addNewFlags(c *cobra.Command) {
	c.Flags().String("source", "", "Catalog source override: http, sql, mongo or file")
	c.Flags().String("catalog", "", "Catalog fixture path (implies --source file)")
}

// runNew is the main entry point for the new command.
func runNew(cmd *cobra.Command, args []string) error {
	ws := workspaceFrom(cmd)
	cfg, err := ws.loadConfig()
	if err != nil {
		return err
	}
	if err := applySourceFlags(cmd, ws, cfg); err != nil {
		return err
	}

	// Don't mix console output with the TUI
	closeLog := initLogging(cmd, cfg, false)
	defer closeLog()
	logging.Info("autolist starting", "version", Version, "source", cfg.Catalog.Source)

	if err := version.UpdateLastRun(ws.dir, Version); err != nil {
		logging.Warn("failed to record last run", "error", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	src, closeSrc, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSrc(); err != nil {
			logging.Warn("failed to close catalog source", "error", err)
		}
	}()

	opts := tuiOptions(cfg, src)
	model := tui.New(ctx, opts)
	runner := tui.NewRunner(ctx, model)
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}

	if n := len(model.Created()); n > 0 {
		cmd.Printf("Created %d listing(s).\n", n)
	}
	return nil
}

// applySourceFlags lets --source and --catalog override the configured
// catalog source.
func applySourceFlags(cmd *cobra.Command, ws *workspace, cfg *config.Config) error {
	source, _ := cmd.Flags().GetString("source")
	file, _ := cmd.Flags().GetString("catalog")

	if file != "" {
		cfg.Catalog.Source = config.CatalogSourceFile
		cfg.Catalog.File = ws.path(file)
	}
	if source != "" {
		cfg.Catalog.Source = config.CatalogSource(source)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid catalog flags: %w", err)
	}
	return nil
}

// tuiOptions wires the create-listing screen to the configured services.
func tuiOptions(cfg *config.Config, src catalog.Source) tui.Options {
	store := session.NewStore()

	opts := tui.Options{
		Source:     src,
		SourceName: sourceName(cfg.Catalog),
		Loader:     catalog.NewLoader(cfg.Catalog.Timeout),
		Store:      store,
		Modal:      session.NewModalState(),
		Providers:  session.ProvidersFromConfig(cfg.Auth.Providers),
		SignupURL:  cfg.Auth.SignupURL,
		Form:       cfg.Form,
	}
	if cfg.Auth.URL != "" {
		opts.Auth = session.NewHTTPAuthenticator(cfg.Auth.URL, cfg.Auth.Timeout)
	}
	if cfg.Submit.Mode == config.SubmitModeHTTP {
		opts.Submitter = listing.NewHTTPSubmitter(cfg.Submit.URL, cfg.Submit.Timeout, store.Token)
		opts.RequireLogin = true
	}
	return opts
}

// sourceName describes the catalog source for the header.
func sourceName(cfg config.CatalogConfig) string {
	switch cfg.Source {
	case config.CatalogSourceFile:
		return "file " + filepath.Base(cfg.File)
	case config.CatalogSourceSQL:
		return "postgres"
	case config.CatalogSourceMongo:
		return "mongo " + cfg.MongoDatabase
	default:
		return cfg.URL
	}
}

// loadCatalog opens the configured source and fetches every list once.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, *catalog.LoadReport, error) {
	src, closeSrc, err := catalog.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = closeSrc() }()

	c, report := catalog.NewLoader(cfg.Timeout).WithLogger(logging.Global()).Load(ctx, src)
	return c, report, nil
}
