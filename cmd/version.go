package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of appraise.",
	Long: `Display the release version, commit, build time and Go runtime.

Include this output when reporting a scoring difference between two installs.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("appraise CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
