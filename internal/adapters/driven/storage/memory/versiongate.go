package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
	"github.com/custodia-labs/typedstore/internal/version"
)

// Ensure VersionGate implements the interface.
var _ driven.VersionGate = (*VersionGate)(nil)

type markerKey struct {
	path string
	kind domain.CacheKind
}

// VersionGate is an in-memory implementation of driven.VersionGate for testing.
type VersionGate struct {
	mu      sync.Mutex
	policy  version.Policy
	markers map[markerKey]string
	opens   int
	closes  int

	// OpenErr, when set, is returned by Open.
	OpenErr error

	// CloseErr, when set, is returned by handle Close calls.
	CloseErr error
}

// NewVersionGate creates a new in-memory version gate.
func NewVersionGate(policy version.Policy) *VersionGate {
	return &VersionGate{
		policy:  policy,
		markers: make(map[markerKey]string),
	}
}

// SetMarker records v as the version that last saved path.
func (g *VersionGate) SetMarker(path string, kind domain.CacheKind, v string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markers[markerKey{path, kind}] = v
}

// Marker returns the recorded version for path.
func (g *VersionGate) Marker(path string, kind domain.CacheKind) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.markers[markerKey{path, kind}]
	return v, ok
}

// Opens returns how many times Open succeeded.
func (g *VersionGate) Opens() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opens
}

// Closes returns how many handles were closed successfully.
func (g *VersionGate) Closes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closes
}

// Open decides whether the cache at path is stale.
func (g *VersionGate) Open(path string, kind domain.CacheKind) (driven.VersionGateHandle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.OpenErr != nil {
		return nil, g.OpenErr
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: cache kind %d", domain.ErrUnsupportedType, kind)
	}

	previous, ok := g.markers[markerKey{path, kind}]
	if !ok {
		previous = version.Zero
	}
	g.opens++
	return &versionHandle{
		gate:       g,
		id:         uuid.NewString(),
		key:        markerKey{path, kind},
		clearCache: g.policy.ClearCache(previous),
	}, nil
}

type versionHandle struct {
	gate       *VersionGate
	id         string
	key        markerKey
	clearCache bool
}

func (h *versionHandle) ID() string {
	return h.id
}

func (h *versionHandle) ClearCache() bool {
	return h.clearCache
}

func (h *versionHandle) Close() error {
	h.gate.mu.Lock()
	defer h.gate.mu.Unlock()

	if h.gate.CloseErr != nil {
		return h.gate.CloseErr
	}
	h.gate.markers[h.key] = h.gate.policy.Current()
	h.gate.closes++
	h.clearCache = false
	return nil
}
