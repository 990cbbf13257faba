package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage host configuration",
	Long:  `View and change where settings are stored and how versions are checked.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show host configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a host configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	settings := configService.Get()
	minCompatible := settings.MinCompatibleVersion
	if minCompatible == "" {
		minCompatible = "(current version)"
	}
	keep := "unlimited"
	if settings.BackupsKeep > 0 {
		keep = strconv.Itoa(settings.BackupsKeep)
	}

	cmd.Println("Configuration")
	cmd.Println("=============")
	cmd.Printf("  storage.data_dir: %s\n", settings.DataDir)
	cmd.Printf("  gate.backend: %s\n", settings.GateBackend)
	cmd.Printf("  gate.min_compatible_version: %s\n", minCompatible)
	cmd.Printf("  backups.keep: %s\n", keep)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	if err := configService.Set(args[0], args[1]); err != nil {
		return err
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
