package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/typedstore/internal/logger"
)

// watchDebounce is how long the document must be quiet before a reload.
const watchDebounce = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the settings whenever the file changes",
	Long: `Load the settings document, then reload it each time the file is written.
Edits that leave the file corrupt are backed up and replaced with defaults
exactly as on a normal load. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadStorage()
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s (hotkey %s, max results %d)\n", store.Path(), settings.Hotkey, settings.MaxResults)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watchDocument(ctx, store.Path(), watchDebounce, func() error {
		settings, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to reload %s: %w", store.Path(), err)
		}
		cmd.Printf("Reloaded (hotkey %s, max results %d)\n", settings.Hotkey, settings.MaxResults)
		return nil
	})
}

// watchDocument calls onChange after path is created or written and then
// stays quiet for debounce. It returns when ctx is done or onChange fails.
func watchDocument(ctx context.Context, path string, debounce time.Duration, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDocumentChange(event, path) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// isDocumentChange reports whether event created or wrote path.
func isDocumentChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write) != 0
}
