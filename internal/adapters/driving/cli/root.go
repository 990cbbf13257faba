package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
	"github.com/custodia-labs/typedstore/internal/logger"
)

// version is set at build time via -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// StorageFactory opens the storage for a named document.
type StorageFactory func(name string) (driving.Storage[domain.LauncherSettings], error)

// Services used by commands. Nil services are wired from the config
// directory on first use; tests replace them directly.
var (
	configService  driving.ConfigService
	backupService  driving.BackupService
	storageFactory StorageFactory
)

// Global flags.
var (
	verbose      bool
	configDir    string
	documentName string
)

var rootCmd = &cobra.Command{
	Use:   "typedstore",
	Short: "Inspect and manage versioned JSON storage files",
	Long: `typedstore manages JSON storage files that are guarded by an application
version marker. Files that are missing, blank, corrupt or written by an
incompatible version are replaced with defaults; discarded content is kept
as a timestamped backup next to the file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print storage events to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.typedstore)")
	rootCmd.PersistentFlags().StringVarP(&documentName, "name", "n", "settings", "name of the storage document")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
