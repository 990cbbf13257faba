package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/version"
)

func newTestGate(t *testing.T) *VersionGate {
	t.Helper()
	policy, err := version.NewPolicy("v1.0.0", "")
	require.NoError(t, err)
	return NewVersionGate(policy)
}

func TestVersionGate_OpenAndClose(t *testing.T) {
	gate := newTestGate(t)

	h, err := gate.Open("/a.json", domain.CacheKindJSON)
	require.NoError(t, err)
	assert.True(t, h.ClearCache())
	assert.Equal(t, 1, gate.Opens())

	require.NoError(t, h.Close())
	assert.Equal(t, 1, gate.Closes())
	v, ok := gate.Marker("/a.json", domain.CacheKindJSON)
	assert.True(t, ok)
	assert.Equal(t, "v1.0.0", v)

	again, err := gate.Open("/a.json", domain.CacheKindJSON)
	require.NoError(t, err)
	assert.False(t, again.ClearCache())
}

func TestVersionGate_SetMarker(t *testing.T) {
	gate := newTestGate(t)
	gate.SetMarker("/a.json", domain.CacheKindJSON, "v1.0.0")

	h, err := gate.Open("/a.json", domain.CacheKindJSON)

	require.NoError(t, err)
	assert.False(t, h.ClearCache())
}

func TestVersionGate_Errors(t *testing.T) {
	gate := newTestGate(t)
	boom := errors.New("boom")

	gate.CloseErr = boom
	h, err := gate.Open("/a.json", domain.CacheKindJSON)
	require.NoError(t, err)
	assert.ErrorIs(t, h.Close(), boom)
	assert.Equal(t, 0, gate.Closes())

	gate.OpenErr = boom
	_, err = gate.Open("/a.json", domain.CacheKindJSON)
	assert.ErrorIs(t, err, boom)
}
