package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autolist/autolist/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show detailed version information for autolist.

Displays the current version, commit hash, build date,
Go/platform information and the version that last ran in the workspace.

Examples:
  autolist version         # Show detailed version info
  autolist version --json  # Machine-readable output`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "Print version information as JSON")
}

// runVersion handles the version command.
func runVersion(cmd *cobra.Command, args []string) error {
	info := version.NewInfo(Version, Commit, Date)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(info.FullString())

	ws := workspaceFrom(cmd)
	if wv, err := version.Load(ws.dir); err == nil {
		cmd.Printf("  Workspace: initialized %s, last used with %s\n", wv.InitializedAt.Format("2006-01-02"), wv.Version)
	}
	return nil
}
