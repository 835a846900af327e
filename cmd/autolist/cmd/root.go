// Package cmd provides the CLI commands for autolist.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	autolisterrors "github.com/autolist/autolist/internal/errors"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "autolist",
	Short: "Autolist - create car listings from the terminal",
	Long: `Autolist is a terminal client for publishing car listings.

It loads brands, models and the other reference lists from an API, a
database or a local fixture, walks you through the create-listing form
with inline validation, and submits the result once you are signed in.`,
	PersistentPreRunE: loadDotEnv,
	// When autolist is called with no subcommand, open the form (same as "autolist new")
	RunE:          runNew,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addPersistentFlags(rootCmd)
}

// addPersistentFlags registers the workspace flags shared by every command.
func addPersistentFlags(c *cobra.Command) {
	c.PersistentFlags().StringP("dir", "C", ".", "Workspace directory holding .autolist/")
	c.PersistentFlags().String("config", "", "Path to config file (default: <dir>/.autolist/config.yaml)")
	c.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadDotEnv loads <dir>/.env into the environment before the config is
// read. A missing file is not an error and existing variables win.
func loadDotEnv(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	path := resolvePath(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("autolist {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders application errors with their details and suggestion.
func formatError(err error) string {
	var appErr *autolisterrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Format()
	}
	return "Error: " + err.Error()
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}
