package store

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKV_SetGetDelete(t *testing.T) {
	kv, err := OpenKV(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer kv.Close()

	_, ok := kv.Get("missing")
	assert.False(t, ok)

	assert.True(t, kv.Set("stories", `[]`))
	value, ok := kv.Get("stories")
	require.True(t, ok)
	assert.Equal(t, `[]`, value)

	// Overwrite
	assert.True(t, kv.Set("stories", `[{"id":1}]`))
	value, ok = kv.Get("stories")
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, value)

	kv.Delete("stories")
	_, ok = kv.Get("stories")
	assert.False(t, ok)

	// Deleting an absent key is a no-op
	kv.Delete("stories")
}

func TestSQLiteKV_Persistence(t *testing.T) {
	path := t.TempDir() + "/kv.db"

	kv, err := OpenKV(path, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, kv.Set("drafts", `[]`))
	require.NoError(t, kv.Close())

	// Reopen and read back
	kv, err = OpenKV(path, zerolog.Nop())
	require.NoError(t, err)
	defer kv.Close()

	value, ok := kv.Get("drafts")
	require.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	_, ok := kv.Get("key")
	assert.False(t, ok)

	assert.True(t, kv.Set("key", "value"))
	value, ok := kv.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", value)

	kv.Delete("key")
	_, ok = kv.Get("key")
	assert.False(t, ok)
}
