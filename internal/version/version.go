// Package version compares application versions and decides whether caches
// written by an earlier version may still be read.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/custodia-labs/typedstore/internal/core/domain"
)

// Zero is the version assumed when no marker has been recorded.
const Zero = "v0.0.0"

// Normalize returns v in canonical "vMAJOR.MINOR.PATCH" form.
// A missing leading "v" is accepted.
func Normalize(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidVersion, v)
	}
	return semver.Canonical(v), nil
}

// Policy decides cache compatibility between the running version and the
// version recorded when a cache was last written.
type Policy struct {
	current       string
	minCompatible string
}

// NewPolicy creates a policy for the running version. Caches written by a
// version older than minCompatible are dropped. An empty minCompatible means
// any version older than current is incompatible.
func NewPolicy(current, minCompatible string) (Policy, error) {
	cur, err := Normalize(current)
	if err != nil {
		return Policy{}, fmt.Errorf("current version: %w", err)
	}
	minVer := cur
	if strings.TrimSpace(minCompatible) != "" {
		minVer, err = Normalize(minCompatible)
		if err != nil {
			return Policy{}, fmt.Errorf("minimum compatible version: %w", err)
		}
	}
	return Policy{current: cur, minCompatible: minVer}, nil
}

// Current returns the canonical running version.
func (p Policy) Current() string {
	return p.current
}

// MinCompatible returns the oldest version whose caches are still readable.
func (p Policy) MinCompatible() string {
	return p.minCompatible
}

// ClearCache reports whether a cache last written by previous must be dropped.
// An unparseable previous version is treated as Zero.
func (p Policy) ClearCache(previous string) bool {
	prev, err := Normalize(previous)
	if err != nil {
		prev = Zero
	}
	if semver.Compare(prev, p.current) == 0 {
		return false
	}
	return semver.Compare(prev, p.minCompatible) < 0
}
