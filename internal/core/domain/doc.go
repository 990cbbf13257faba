// Package domain defines the core types shared by the storage layer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CacheKind: The logical kind of cache a version marker tracks
//   - Backup: A timestamped copy of a discarded storage file
//   - LauncherSettings: The sample document persisted by the CLI
//   - HostSettings: Where documents live and how versions are checked
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
