package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
	"github.com/custodia-labs/typedstore/internal/logger"
	"github.com/custodia-labs/typedstore/internal/version"
)

// Marker is the recorded version of a cache file.
type Marker struct {
	Path      string
	Kind      domain.CacheKind
	Version   string
	SessionID string
	UpdatedAt time.Time
}

// Marker retrieves the version marker for a cache file.
// Returns domain.ErrNotFound if no marker has been recorded.
func (s *Store) Marker(ctx context.Context, path string, kind domain.CacheKind) (*Marker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, kind, version, session_id, updated_at
		FROM version_markers WHERE path = ? AND kind = ?
	`, path, int(kind))

	var m Marker
	var k int
	err := row.Scan(&m.Path, &k, &m.Version, &m.SessionID, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning version marker: %w", err)
	}
	m.Kind = domain.CacheKind(k)
	return &m, nil
}

// saveMarker creates or updates the marker for a cache file.
func (s *Store) saveMarker(ctx context.Context, m Marker) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO version_markers (path, kind, version, session_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path, kind) DO UPDATE SET
			version = excluded.version,
			session_id = excluded.session_id,
			updated_at = excluded.updated_at
	`, m.Path, int(m.Kind), m.Version, m.SessionID, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving version marker: %w", err)
	}
	return nil
}

// versionGate implements driven.VersionGate.
type versionGate struct {
	store  *Store
	policy version.Policy
}

var _ driven.VersionGate = (*versionGate)(nil)

// Open looks up the marker for filePath and decides whether the cache is stale.
func (g *versionGate) Open(filePath string, kind domain.CacheKind) (driven.VersionGateHandle, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: cache kind %d", domain.ErrUnsupportedType, kind)
	}

	previous := version.Zero
	m, err := g.store.Marker(context.Background(), filePath, kind)
	switch {
	case err == nil:
		previous = m.Version
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, err
	}

	h := &versionHandle{
		store:      g.store,
		id:         uuid.NewString(),
		path:       filePath,
		kind:       kind,
		current:    g.policy.Current(),
		clearCache: g.policy.ClearCache(previous),
	}
	logger.Debug("version gate %s: previous=%s current=%s clear=%t", h.id, previous, h.current, h.clearCache)
	return h, nil
}

// versionHandle is the per-load decision of a versionGate.
type versionHandle struct {
	store      *Store
	id         string
	path       string
	kind       domain.CacheKind
	current    string
	clearCache bool
}

var _ driven.VersionGateHandle = (*versionHandle)(nil)

func (h *versionHandle) ID() string {
	return h.id
}

func (h *versionHandle) ClearCache() bool {
	return h.clearCache
}

// Close records the running version for the cache file.
func (h *versionHandle) Close() error {
	err := h.store.saveMarker(context.Background(), Marker{
		Path:      h.path,
		Kind:      h.kind,
		Version:   h.current,
		SessionID: h.id,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	h.clearCache = false
	return nil
}
