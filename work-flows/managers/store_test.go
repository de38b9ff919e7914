package managers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsAreIsolated(t *testing.T) {
	store := NewSessionStore()
	a := store.Create()
	b := store.Create()

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, store.Len())

	got, ok := store.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestGetOrCreate(t *testing.T) {
	store := NewSessionStore()

	first, created := store.GetOrCreate("")
	assert.True(t, created)

	again, created := store.GetOrCreate(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)

	_, created = store.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.Equal(t, 2, store.Len())
}

func TestNewSessionStartsEmpty(t *testing.T) {
	state := NewSessionStore().Create()
	snap := state.Snapshot()

	assert.True(t, snap.Selection.IsZero())
	assert.False(t, snap.VideoReady)
	assert.Empty(t, snap.History)
}

func TestEvictIdle(t *testing.T) {
	store := NewSessionStore()
	stale := store.Create()
	fresh := store.Create()

	now := time.Now()
	stale.Touch(now.Add(-2 * time.Hour))
	fresh.Touch(now)

	assert.Equal(t, 0, store.EvictIdle(0, now), "zero disables eviction")
	assert.Equal(t, 1, store.EvictIdle(time.Hour, now))

	_, ok := store.Get(stale.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.True(t, ok)

	store.Delete(fresh.ID)
	assert.Equal(t, 0, store.Len())
}
