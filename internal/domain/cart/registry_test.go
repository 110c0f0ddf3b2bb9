package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameStorePerOwner(t *testing.T) {
	r := NewRegistry()

	a := r.Get("user-1")
	b := r.Get("user-1")
	c := r.Get("session-xyz")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryTakeDoesNotCreate(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Take("nobody")

	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryPruneRemovesIdleCarts(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	r.Get("stale")
	now = now.Add(2 * time.Hour)
	r.Get("fresh")

	removed := r.Prune(time.Hour)

	assert.Equal(t, 1, removed)
	_, ok := r.Take("stale")
	assert.False(t, ok)
	_, ok = r.Take("fresh")
	assert.True(t, ok)
}

func TestRegistryTakeRemovesStoreOnce(t *testing.T) {
	r := NewRegistry()
	s := r.Get("session:abc")

	taken, ok := r.Take("session:abc")
	require.True(t, ok)
	assert.Same(t, s, taken)

	_, ok = r.Take("session:abc")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}
