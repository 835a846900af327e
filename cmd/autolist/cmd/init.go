package cmd

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/config"
	"github.com/autolist/autolist/internal/server"
	"github.com/autolist/autolist/internal/version"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an autolist workspace",
	Long: `Initialize an autolist workspace in the current directory.

This command creates the .autolist directory:
  - .autolist/config.yaml    Default configuration using the local fixture
  - .autolist/catalog.yaml   Demo reference data
  - .autolist/version.json   Version that initialized the workspace

A random server.jwt_secret is generated. Use --user to add an account for
'autolist serve'; the password is read from --password or prompted for.

Use --force to overwrite existing configuration.

Examples:
  autolist init                           # Initialize in current directory
  autolist init --force                   # Overwrite existing config
  autolist init --user ada@example.com    # Also create a server account`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	addInitFlags(initCmd)
}

func addInitFlags(c *cobra.Command) {
	c.Flags().BoolP("force", "f", false, "Overwrite existing configuration")
	c.Flags().String("user", "", "Email of a development-server account to create")
	c.Flags().String("name", "", "Display name of the account")
	c.Flags().String("password", "", "Password of the account (prompted when omitted)")
}

// runInit is the main entry point for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	ws := workspaceFrom(cmd)

	if _, err := os.Stat(ws.configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", ws.configPath)
	}

	if force {
		cmd.Println("Initializing autolist (force mode)...")
	} else {
		cmd.Println("Initializing autolist...")
	}

	cfg := config.NewConfig()
	cfg.Catalog.Source = config.CatalogSourceFile
	secret, err := newSecret()
	if err != nil {
		return err
	}
	cfg.Server.JWTSecret = secret

	user, err := initUser(cmd)
	if err != nil {
		return err
	}
	if user != nil {
		cfg.Server.Users = append(cfg.Server.Users, *user)
	}

	if err := config.Save(ws.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("Created %s\n", ws.configPath)

	fixture := ws.path(cfg.Catalog.File)
	if _, err := os.Stat(fixture); err != nil || force {
		if err := catalog.WriteFile(fixture, catalog.Demo()); err != nil {
			return err
		}
		cmd.Printf("Created %s\n", fixture)
	}

	if err := version.MarkInitialized(ws.dir, Version); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}

	if user != nil {
		cmd.Printf("Added server account %s\n", user.Email)
	}
	cmd.Println("")
	cmd.Println("autolist initialized successfully!")
	cmd.Printf("Edit %s to configure your settings.\n", ws.configPath)
	cmd.Println("Run 'autolist' to create a listing.")

	return nil
}

// initUser builds the server account requested by --user, prompting for
// the password when it was not given.
func initUser(cmd *cobra.Command) (*config.UserConfig, error) {
	email, _ := cmd.Flags().GetString("user")
	if email == "" {
		return nil, nil
	}
	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = promptInput(cmd, bufio.NewReader(cmd.InOrStdin()), "Password for "+email, "")
	}
	if password == "" {
		return nil, fmt.Errorf("a password is required for %s", email)
	}

	hash, err := server.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &config.UserConfig{Email: email, Name: name, PasswordHash: hash}, nil
}

// newSecret returns a random hex token signing secret.
func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// promptInput prompts the user for input with a default value.
func promptInput(cmd *cobra.Command, reader *bufio.Reader, prompt string, defaultVal string) string {
	if defaultVal != "" {
		cmd.Printf("%s [%s]: ", prompt, defaultVal)
	} else {
		cmd.Printf("%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return defaultVal
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}
