package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
	"github.com/custodia-labs/typedstore/internal/logger"
	"github.com/custodia-labs/typedstore/internal/version"
)

// Ensure Gate implements the interface.
var _ driven.VersionGate = (*Gate)(nil)

// markerSuffix is appended to the cache name to form the marker file name.
const markerSuffix = "_version.txt"

// Gate is a file-based implementation of driven.VersionGate.
type Gate struct {
	policy version.Policy
}

// NewGate creates a gate deciding compatibility with policy.
func NewGate(policy version.Policy) *Gate {
	return &Gate{policy: policy}
}

// MarkerPath returns the marker file path for a cache of the given kind.
func MarkerPath(filePath string, kind domain.CacheKind) string {
	return strings.TrimSuffix(filePath, kind.Suffix()) + markerSuffix
}

// Open reads the marker for filePath and decides whether the cache is stale.
// A missing marker counts as version zero.
func (g *Gate) Open(filePath string, kind domain.CacheKind) (driven.VersionGateHandle, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: cache kind %d", domain.ErrUnsupportedType, kind)
	}

	markerPath := MarkerPath(filePath, kind)
	previous := version.Zero
	data, err := os.ReadFile(markerPath)
	switch {
	case err == nil:
		previous = strings.TrimSpace(string(data))
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading version marker: %w", err)
	}

	h := &handle{
		id:         uuid.NewString(),
		markerPath: markerPath,
		current:    g.policy.Current(),
		clearCache: g.policy.ClearCache(previous),
	}
	logger.Debug("version gate %s: previous=%s current=%s clear=%t", h.id, previous, h.current, h.clearCache)
	return h, nil
}

// handle is the per-load decision of a Gate.
type handle struct {
	id         string
	markerPath string
	current    string
	clearCache bool
}

func (h *handle) ID() string {
	return h.id
}

func (h *handle) ClearCache() bool {
	return h.clearCache
}

// Close writes the running version to the marker file.
func (h *handle) Close() error {
	if err := os.MkdirAll(filepath.Dir(h.markerPath), 0700); err != nil {
		return fmt.Errorf("creating marker directory: %w", err)
	}
	if err := os.WriteFile(h.markerPath, []byte(h.current), 0600); err != nil {
		return fmt.Errorf("writing version marker: %w", err)
	}
	// Later loads in this process see the cache as current.
	h.clearCache = false
	return nil
}
