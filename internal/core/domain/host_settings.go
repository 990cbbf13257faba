package domain

// GateBackend selects where version markers are recorded.
type GateBackend string

// Available gate backends.
const (
	// GateBackendFile keeps a <name>_version.txt marker next to each file.
	GateBackendFile GateBackend = "file"

	// GateBackendSQLite keeps markers in a SQLite database in the data directory.
	GateBackendSQLite GateBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b GateBackend) IsValid() bool {
	return b == GateBackendFile || b == GateBackendSQLite
}

// String returns the string representation.
func (b GateBackend) String() string {
	return string(b)
}

// HostSettings configures how the CLI host locates and guards its storage files.
type HostSettings struct {
	// DataDir holds storage files and the version database.
	DataDir string

	// GateBackend selects the version marker backend.
	GateBackend GateBackend

	// MinCompatibleVersion is the oldest version whose files are kept.
	// Empty means files written by any older version are dropped.
	MinCompatibleVersion string

	// BackupsKeep is the number of backups kept by prune. Zero keeps all.
	BackupsKeep int
}

// DefaultHostSettings returns the settings used when nothing is configured.
func DefaultHostSettings(dataDir string) HostSettings {
	return HostSettings{
		DataDir:     dataDir,
		GateBackend: GateBackendFile,
	}
}
