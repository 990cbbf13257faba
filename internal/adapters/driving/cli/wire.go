package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/typedstore/internal/adapters/driven/codec/jsoncodec"
	configfile "github.com/custodia-labs/typedstore/internal/adapters/driven/config/file"
	"github.com/custodia-labs/typedstore/internal/adapters/driven/storage/sqlite"
	gatefile "github.com/custodia-labs/typedstore/internal/adapters/driven/versiongate/file"
	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
	"github.com/custodia-labs/typedstore/internal/core/services"
	"github.com/custodia-labs/typedstore/internal/logger"
	versionpolicy "github.com/custodia-labs/typedstore/internal/version"
)

// closers release resources opened while wiring services.
var closers []func() error

// ensureConfig wires the config service from the config directory.
func ensureConfig() error {
	if configService != nil {
		return nil
	}

	dir := configDir
	if dir == "" {
		d, err := configfile.DefaultDir()
		if err != nil {
			return err
		}
		dir = d
	}

	store, err := configfile.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configService = services.NewConfigService(store, filepath.Join(dir, domain.SettingsDirectoryName))
	return nil
}

// ensureServices wires every service commands need.
func ensureServices() error {
	if err := ensureConfig(); err != nil {
		return err
	}
	if backupService == nil {
		backupService = services.NewBackupService(time.Local)
	}
	if storageFactory != nil {
		return nil
	}

	settings := configService.Get()
	gate, err := openGate(settings)
	if err != nil {
		return err
	}
	storageFactory = func(name string) (driving.Storage[domain.LauncherSettings], error) {
		path, err := documentPath(settings.DataDir, name)
		if err != nil {
			return nil, err
		}
		codec := jsoncodec.New(domain.DefaultLauncherSettings)
		return services.NewJSONStorage[domain.LauncherSettings](path, codec, gate), nil
	}
	return nil
}

// openGate builds the version gate selected by settings.
func openGate(settings domain.HostSettings) (driven.VersionGate, error) {
	policy, err := versionpolicy.NewPolicy(cacheVersion(), settings.MinCompatibleVersion)
	if err != nil {
		return nil, err
	}

	switch settings.GateBackend {
	case domain.GateBackendSQLite:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, err
		}
		closers = append(closers, store.Close)
		return store.VersionGate(policy), nil
	case domain.GateBackendFile:
		return gatefile.NewGate(policy), nil
	default:
		return nil, fmt.Errorf("%w: gate backend %q", domain.ErrUnsupportedType, settings.GateBackend)
	}
}

// cacheVersion returns the version recorded in markers. Builds without a
// semantic version record version zero.
func cacheVersion() string {
	current, err := versionpolicy.Normalize(version)
	if err != nil {
		logger.Debug("build version %q is not semantic, using %s", version, versionpolicy.Zero)
		return versionpolicy.Zero
	}
	return current
}

// documentPath returns <dataDir>/<name>.json for a plain document name.
func documentPath(dataDir, name string) (string, error) {
	name = strings.TrimSuffix(name, domain.JSONFileSuffix)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid document name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(dataDir, name+domain.JSONFileSuffix), nil
}

// closeServices releases wired resources.
func closeServices() error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c())
	}
	closers = nil
	return errors.Join(errs...)
}
