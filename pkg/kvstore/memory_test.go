package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreEntries(t *testing.T) {
	store := NewMemoryStore()

	var out string
	found, err := store.Get("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("greeting", "hello"))
	found, err = store.Get("greeting", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello", out)

	require.NoError(t, store.Set("greeting", "goodbye"))
	found, err = store.Get("greeting", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "goodbye", out)

	require.NoError(t, store.Delete("greeting"))
	found, err = store.Get("greeting", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreSets(t *testing.T) {
	store := NewMemoryStore()

	ok, err := store.SetContains("rings", "one")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetAdd("rings", "one"))
	require.NoError(t, store.SetAdd("rings", "one"))
	require.NoError(t, store.SetAdd("rings", "two"))

	ok, err = store.SetContains("rings", "one")
	require.NoError(t, err)
	assert.True(t, ok)

	members, err := store.SetMembers("rings")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, members)

	require.NoError(t, store.SetRemove("rings", "one"))
	ok, err = store.SetContains("rings", "one")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing from an unknown set is a no-op.
	require.NoError(t, store.SetRemove("ghosts", "boo"))
}
