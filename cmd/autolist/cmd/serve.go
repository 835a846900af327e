package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/logging"
	"github.com/autolist/autolist/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the development API server",
	Long: `Run the development API server.

The server exposes the reference lists, a login endpoint backed by the
users in the config, and an in-memory create-listing endpoint protected by
the issued tokens.

The reference data comes from --catalog when given, otherwise from the
configured sql, mongo or file source. With the http source, which would
point at the server itself, the workspace fixture is used when present and
the built-in demo data otherwise.

Examples:
  autolist serve                       # Listen on server.addr
  autolist serve --addr :9090          # Listen on another address
  autolist serve --catalog cars.yaml   # Serve a fixture file
  autolist serve --demo                # Serve the built-in demo data`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	serveCmd.Flags().String("catalog", "", "Catalog fixture to serve")
	serveCmd.Flags().Bool("demo", false, "Serve the built-in demo catalog")
}

// runServe is the main entry point for the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	ws := workspaceFrom(cmd)
	cfg, err := ws.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is not set: run 'autolist init' or set AUTOLIST_SERVER_JWT_SECRET")
	}

	closeLog := initLogging(cmd, cfg, true)
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	cat, err := serveCatalog(ctx, cmd, ws, cfg)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := server.New(serverOptions(cfg, cat))
	cmd.Printf("Serving %d brands and %d models on %s\n", len(cat.Brands), len(cat.Models), addr)
	return srv.Run(ctx, addr)
}

// serverOptions builds the server options from the config.
func serverOptions(cfg *config.Config, cat *catalog.Catalog) server.Options {
	return server.Options{
		Catalog:           cat,
		Secret:            []byte(cfg.Server.JWTSecret),
		TokenTTL:          cfg.Server.TokenTTL,
		Users:             cfg.Server.Users,
		EnforceModelBrand: cfg.Form.EnforceModelBrand,
		Logger:            logging.Global(),
	}
}

// serveCatalog picks the reference data the server exposes.
func serveCatalog(ctx context.Context, cmd *cobra.Command, ws *workspace, cfg *config.Config) (*catalog.Catalog, error) {
	demo, _ := cmd.Flags().GetBool("demo")
	file, _ := cmd.Flags().GetString("catalog")

	switch {
	case demo:
		return catalog.Demo(), nil
	case file != "":
		return catalog.ReadFile(ws.path(file))
	case cfg.Catalog.Source == config.CatalogSourceHTTP:
		if _, err := os.Stat(cfg.Catalog.File); err == nil {
			return catalog.ReadFile(cfg.Catalog.File)
		}
		logging.Info("no catalog fixture found, serving demo data", "file", cfg.Catalog.File)
		return catalog.Demo(), nil
	}

	c, report, err := loadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	if !report.OK() {
		logging.Warn("catalog loaded with failures", "summary", report.Summary())
		cmd.PrintErrln("Warning: " + report.Summary())
	}
	return c, nil
}
