package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/logging"
)

// workspace locates the .autolist directory a command works in.
type workspace struct {
	dir        string
	configPath string
}

// workspaceFrom reads the --dir and --config flags.
func workspaceFrom(cmd *cobra.Command) *workspace {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = "."
	}
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = filepath.Join(dir, config.DefaultConfigPath)
	}
	return &workspace{dir: dir, configPath: path}
}

// path resolves p against the workspace directory.
func (w *workspace) path(p string) string {
	return resolvePath(w.dir, p)
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// loadConfig loads the workspace config, falling back to defaults when the
// file does not exist. Relative file paths are resolved against the
// workspace directory.
func (w *workspace) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(w.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Catalog.File = w.path(cfg.Catalog.File)
	cfg.Log.Dir = w.path(cfg.Log.Dir)
	return cfg, nil
}

// initLogging starts the global file logger. Console output is only enabled
// for commands that do not take over the terminal. The returned function
// closes the logger.
func initLogging(cmd *cobra.Command, cfg *config.Config, console bool) func() {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = logging.LevelDebug
	}

	logConfig := &logging.Config{
		Level:       level,
		LogDir:      cfg.Log.Dir,
		MaxLogFiles: 10,
		MaxLogAge:   7 * 24 * time.Hour,
		Console:     console,
		JSONFormat:  cfg.Log.JSON,
	}
	if err := logging.InitGlobal(logConfig); err != nil {
		// Non-fatal: warn but continue without file logging
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
		return func() {}
	}
	return func() { _ = logging.CloseGlobal() }
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
