package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.Set(ctx, "k", doc{Name: "first", Count: 3}))

	var got doc
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, doc{Name: "first", Count: 3}, got)
}

func TestMemoryStore_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var dest map[string]string
	err := store.Get(ctx, "absent", &dest)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_SetReplacesValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", []string{"a"}))
	require.NoError(t, store.Set(ctx, "k", []string{"b", "c"}))

	var got []string
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))

	var got string
	assert.ErrorIs(t, store.Get(ctx, "k", &got), ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStore_StoresEncodedCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := map[string]int{"a": 1}
	require.NoError(t, store.Set(ctx, "k", value))

	// Mutating the original after Set must not leak into the store.
	value["a"] = 99

	var got map[string]int
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])
}
