package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
	"github.com/custodia-labs/typedstore/internal/logger"
	"github.com/custodia-labs/typedstore/internal/version"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for host settings.
const (
	keyDataDir       = "storage.data_dir"
	keyGateBackend   = "gate.backend"
	keyMinCompatible = "gate.min_compatible_version"
	keyBackupsKeep   = "backups.keep"
)

// ConfigService manages host settings.
type ConfigService struct {
	configStore    driven.ConfigStore
	defaultDataDir string
}

// NewConfigService creates a new config service.
// defaultDataDir is used when storage.data_dir is unset.
func NewConfigService(configStore driven.ConfigStore, defaultDataDir string) *ConfigService {
	return &ConfigService{
		configStore:    configStore,
		defaultDataDir: defaultDataDir,
	}
}

// Get returns the current host settings. Invalid stored values fall back to
// defaults.
func (s *ConfigService) Get() domain.HostSettings {
	settings := domain.DefaultHostSettings(s.defaultDataDir)

	if dir := s.configStore.GetString(keyDataDir); dir != "" {
		settings.DataDir = dir
	}

	if raw := s.configStore.GetString(keyGateBackend); raw != "" {
		backend := domain.GateBackend(raw)
		if backend.IsValid() {
			settings.GateBackend = backend
		} else {
			logger.Warn("ignoring unknown %s %q", keyGateBackend, raw)
		}
	}

	if raw := s.configStore.GetString(keyMinCompatible); raw != "" {
		if v, err := version.Normalize(raw); err == nil {
			settings.MinCompatibleVersion = v
		} else {
			logger.Warn("ignoring %s: %v", keyMinCompatible, err)
		}
	}

	if keep := s.configStore.GetInt(keyBackupsKeep); keep > 0 {
		settings.BackupsKeep = keep
	}

	return settings
}

// Set validates and stores a single setting.
func (s *ConfigService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyDataDir:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	case keyGateBackend:
		if !domain.GateBackend(value).IsValid() {
			return fmt.Errorf("%w: unknown gate backend %q", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, value)
	case keyMinCompatible:
		v, err := version.Normalize(value)
		if err != nil {
			return err
		}
		return s.configStore.Set(key, v)
	case keyBackupsKeep:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)
	default:
		return fmt.Errorf("%w: unknown config key %q", domain.ErrNotFound, key)
	}
}

// Keys lists the settable keys.
func (s *ConfigService) Keys() []string {
	return []string{keyDataDir, keyGateBackend, keyMinCompatible, keyBackupsKeep}
}
