package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typedstore/internal/adapters/driven/codec/jsoncodec"
	"github.com/custodia-labs/typedstore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
	"github.com/custodia-labs/typedstore/internal/core/services"
	versionpolicy "github.com/custodia-labs/typedstore/internal/version"
)

// saveGlobals snapshots package state and restores it on cleanup.
func saveGlobals(t *testing.T) {
	t.Helper()

	oldConfig, oldBackup, oldFactory := configService, backupService, storageFactory
	oldName, oldConfigDir, oldVerbose := documentName, configDir, verbose
	oldJSON, oldKeep, oldConfirm, oldInteractive := showJSON, pruneKeep, resetConfirm, isInteractive

	documentName, configDir, verbose = "settings", "", false
	showJSON, pruneKeep, resetConfirm = false, -1, false
	isInteractive = func() bool { return false }

	t.Cleanup(func() {
		_ = closeServices()
		configService, backupService, storageFactory = oldConfig, oldBackup, oldFactory
		documentName, configDir, verbose = oldName, oldConfigDir, oldVerbose
		showJSON, pruneKeep, resetConfirm, isInteractive = oldJSON, oldKeep, oldConfirm, oldInteractive
		rootCmd.SetIn(nil)
	})
}

// setupStoreTest wires in-memory config and a memory version gate over a
// temp directory, returning the directory and the gate. The settings
// document's marker is current, so the gate never clears it.
func setupStoreTest(t *testing.T) (string, *memory.VersionGate) {
	t.Helper()
	saveGlobals(t)

	dir := t.TempDir()
	policy, err := versionpolicy.NewPolicy("v1.0.0", "")
	require.NoError(t, err)
	gate := memory.NewVersionGate(policy)
	gate.SetMarker(filepath.Join(dir, "settings.json"), domain.CacheKindJSON, "v1.0.0")

	configService = services.NewConfigService(memory.NewConfigStore(), dir)
	backupService = services.NewBackupService(time.Local)
	storageFactory = func(name string) (driving.Storage[domain.LauncherSettings], error) {
		path, err := documentPath(dir, name)
		if err != nil {
			return nil, err
		}
		codec := jsoncodec.New(domain.DefaultLauncherSettings)
		return services.NewJSONStorage[domain.LauncherSettings](path, codec, gate), nil
	}
	return dir, gate
}

// resetServices forces the next command to wire services again.
func resetServices(t *testing.T) {
	t.Helper()
	require.NoError(t, closeServices())
	configService, backupService, storageFactory = nil, nil, nil
}

func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
