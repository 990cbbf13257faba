package driving

import "github.com/custodia-labs/typedstore/internal/core/domain"

// ConfigService manages host settings.
type ConfigService interface {
	// Get returns the current host settings, with defaults for unset keys.
	Get() domain.HostSettings

	// Set validates and stores a single setting.
	Set(key, value string) error

	// Keys lists the settable keys.
	Keys() []string
}
