package driving

import "github.com/custodia-labs/typedstore/internal/core/domain"

// Storage persists a single value of shape T in a file.
type Storage[T any] interface {
	// Load reads the stored value, falling back to defaults when the file is
	// missing, blank, corrupt or written by an incompatible version.
	// The returned value is never nil when err is nil.
	Load() (*T, error)

	// Save writes the current value to disk.
	// Write failures are logged, not returned; ErrNotLoaded is returned when
	// Save is called before Load.
	Save() error

	// LastSaveError returns the error of the most recent failed save, or nil.
	LastSaveError() error

	// Value returns the current in-memory value, or nil before Load.
	Value() *T

	// Set replaces the in-memory value. Nil is ignored.
	Set(v *T)

	// Path returns the storage file path.
	Path() string

	// DirectoryPath returns the directory holding the storage file.
	DirectoryPath() string
}

// BackupService manages the backup copies a Storage leaves behind.
type BackupService interface {
	// List returns the backups of filePath, newest first.
	List(filePath string) ([]domain.Backup, error)

	// Prune removes all but the newest keep backups of filePath and returns
	// how many were removed. A keep of zero or less removes nothing.
	Prune(filePath string, keep int) (int, error)
}
