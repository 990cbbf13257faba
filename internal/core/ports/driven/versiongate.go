package driven

import "github.com/custodia-labs/typedstore/internal/core/domain"

// VersionGate decides whether an on-disk cache written by an earlier
// application version must be dropped before it is read.
type VersionGate interface {
	// Open inspects the version marker associated with filePath and returns
	// a handle carrying the decision for this load session.
	Open(filePath string, kind domain.CacheKind) (VersionGateHandle, error)
}

// VersionGateHandle is the per-load decision returned by VersionGate.Open.
type VersionGateHandle interface {
	// ID identifies the load session that opened this handle.
	ID() string

	// ClearCache returns true if the cache must be deleted unread.
	ClearCache() bool

	// Close records the running version as the cache's version.
	// It is called once, after the cache has been written successfully.
	Close() error
}
