package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Manage backups of discarded settings files",
	Long: `A settings file that cannot be used is copied to a timestamped backup
next to it before defaults are written. These commands list and prune them.`,
}

var backupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupsList,
}

var backupsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove all but the newest backups. Without --keep the backups.keep
setting is used; zero keeps everything.`,
	Args: cobra.NoArgs,
	RunE: runBackupsPrune,
}

// pruneKeep is a flag for the prune command.
var pruneKeep int

func init() {
	backupsPruneCmd.Flags().IntVarP(&pruneKeep, "keep", "k", -1, "number of backups to keep (default backups.keep)")

	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsPruneCmd)
	rootCmd.AddCommand(backupsCmd)
}

func runBackupsList(cmd *cobra.Command, _ []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	backups, err := backupService.List(store.Path())
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		cmd.Println("No backups found.")
		return nil
	}

	cmd.Printf("Backups (%d):\n", len(backups))
	for _, b := range backups {
		cmd.Printf("  %s  %8d bytes  %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}

func runBackupsPrune(cmd *cobra.Command, _ []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	if backupService == nil {
		return errors.New("backup service not configured")
	}

	keep := pruneKeep
	if keep < 0 {
		keep = configService.Get().BackupsKeep
	}
	if keep <= 0 {
		cmd.Println("Retention is unlimited; nothing to prune.")
		return nil
	}

	removed, err := backupService.Prune(store.Path(), keep)
	if err != nil {
		return fmt.Errorf("failed to prune backups: %w", err)
	}

	cmd.Printf("Removed %d backup(s), kept at most %d.\n", removed, keep)
	return nil
}
