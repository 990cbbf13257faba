package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()

	require.NotNil(t, store)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("gate.backend", "sqlite"))

	val, ok := store.Get("gate.backend")
	assert.True(t, ok)
	assert.Equal(t, "sqlite", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("name", "value")
	_ = store.Set("count", 3)

	assert.Equal(t, "value", store.GetString("name"))
	assert.Equal(t, "", store.GetString("count"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{"int", 7, 7},
		{"int64", int64(8), 8},
		{"float64", 9.0, 9},
		{"string", "10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("key", tt.value)
			assert.Equal(t, tt.expected, store.GetInt("key"))
		})
	}
}
