package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the build version and the version recorded in cache markers.
Files marked by an incompatible version are cleared on load.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("typedstore version %s (cache version %s)\n", version, cacheVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
