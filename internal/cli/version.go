package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, overridden via ldflags on release builds.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// versionString renders the one-line form used by both the version
// subcommand and the root --version output.
func versionString() string {
	return fmt.Sprintf("llmifier %s (commit %s, built %s)", version, gitCommit, buildDate)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Println(version)
			return
		}
		fmt.Println(versionString())
	},
}

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
