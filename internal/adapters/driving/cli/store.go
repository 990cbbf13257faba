package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/typedstore/internal/adapters/driven/codec/jsoncodec"
	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored settings",
	Long: `Load the settings document and print it. A missing, blank, corrupt or
incompatible file is replaced with defaults first.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Update a single setting",
	Long: `Update a single setting and save the document.

Keys: ` + strings.Join(domain.LauncherSettingKeys(), ", ") + `

List values (ignored_plugins) are comma separated. An empty last_query
clears it.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the settings to defaults",
	Long: `Replace the stored settings with defaults. When run from a terminal the
command asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

// Command flags.
var (
	showJSON     bool
	resetConfirm bool
)

// isInteractive reports whether prompts can be shown on stdin.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the document as JSON")
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "reset without asking")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(pathCmd)
}

// openStorage wires services and returns the storage for --name.
func openStorage() (driving.Storage[domain.LauncherSettings], error) {
	if err := ensureServices(); err != nil {
		return nil, err
	}
	if storageFactory == nil {
		return nil, errors.New("storage not configured")
	}
	return storageFactory(documentName)
}

// loadStorage opens and loads the storage for --name.
func loadStorage() (driving.Storage[domain.LauncherSettings], *domain.LauncherSettings, error) {
	store, err := openStorage()
	if err != nil {
		return nil, nil, err
	}
	settings, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", store.Path(), err)
	}
	return store, settings, nil
}

// saveStorage saves and reports a swallowed write failure.
func saveStorage(store driving.Storage[domain.LauncherSettings]) error {
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	if err := store.LastSaveError(); err != nil {
		return fmt.Errorf("failed to save %s: %w", store.Path(), err)
	}
	return nil
}

func runShow(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadStorage()
	if err != nil {
		return err
	}

	if showJSON {
		data, err := jsoncodec.New(domain.DefaultLauncherSettings).Encode(settings)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		cmd.Print(string(data))
		return nil
	}

	cmd.Printf("Settings (%s)\n", store.Path())
	cmd.Println()
	cmd.Printf("  Hotkey: %s\n", settings.Hotkey)
	cmd.Printf("  Max results: %d\n", settings.MaxResults)
	cmd.Printf("  Theme: %s\n", settings.Theme)
	cmd.Printf("  Clear input on launch: %t\n", settings.ClearInputOnLaunch)
	if len(settings.IgnoredPlugins) > 0 {
		cmd.Printf("  Ignored plugins: %s\n", strings.Join(settings.IgnoredPlugins, ", "))
	} else {
		cmd.Println("  Ignored plugins: (none)")
	}
	if settings.LastQuery != nil {
		cmd.Printf("  Last query: %s\n", *settings.LastQuery)
	} else {
		cmd.Println("  Last query: (not set)")
	}

	if len(settings.Plugins) > 0 {
		cmd.Println()
		cmd.Println("[Plugins]")
		ids := make([]string, 0, len(settings.Plugins))
		for id := range settings.Plugins {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			p := settings.Plugins[id]
			status := "enabled"
			if p.Disabled {
				status = "disabled"
			}
			cmd.Printf("  %s: %s, weight %d", id, status, p.Weight)
			if p.ActionKeyword != "" {
				cmd.Printf(", keyword %q", p.ActionKeyword)
			}
			cmd.Println()
		}
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	store, settings, err := loadStorage()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settings.Set(key, value); err != nil {
		return err
	}
	store.Set(settings)
	if err := saveStorage(store); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	store, _, err := loadStorage()
	if err != nil {
		return err
	}

	if !resetConfirm && isInteractive() {
		cmd.Printf("Reset %s to defaults? [y/N]: ", store.Path())
		if !confirm(cmd.InOrStdin()) {
			cmd.Println("Aborted.")
			return nil
		}
	}

	store.Set(domain.DefaultLauncherSettings())
	if err := saveStorage(store); err != nil {
		return err
	}

	cmd.Printf("Reset %s to defaults\n", store.Path())
	return nil
}

func runPath(cmd *cobra.Command, _ []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	cmd.Println(store.Path())
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func confirm(r io.Reader) bool {
	input, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
