package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/domain/providers"
)

// runStoreContract exercises the behavior every KVStore implementation
// must share.
func runStoreContract(t *testing.T, store providers.KVStore) {
	ctx := context.Background()

	t.Run("missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "absent")
		assert.ErrorIs(t, err, providers.ErrKeyNotFound)

		ok, err := store.Exists(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "snapshot", []byte(`{"version":1}`)))

		got, err := store.Get(ctx, "snapshot")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"version":1}`), got)

		ok, err := store.Exists(ctx, "snapshot")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("set overwrites previous value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "snapshot", []byte(`{"version":2}`)))

		got, err := store.Get(ctx, "snapshot")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"version":2}`), got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "snapshot"))
		require.NoError(t, store.Delete(ctx, "snapshot"))

		_, err := store.Get(ctx, "snapshot")
		assert.ErrorIs(t, err, providers.ErrKeyNotFound)
	})

	t.Run("namespaced keys do not collide", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "history:prov-1", []byte(`[]`)))
		require.NoError(t, store.Set(ctx, "history:prov-2", []byte(`[1]`)))

		got, err := store.Get(ctx, "history:prov-1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})
}

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestFileStoreContract(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	runStoreContract(t, store)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "doc", []byte("abc")))

	got, err := store.Get(ctx, "doc")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := store.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "snapshot", []byte(`{"providers":[]}`)))

	second, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := second.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"providers":[]}`), got)
}
