package store

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenah/story-cli/model"
)

func newTestLikes(t *testing.T) *Likes {
	t.Helper()
	return NewLikes(NewMemoryKV(), zerolog.Nop())
}

func TestLikes_Defaults(t *testing.T) {
	l := newTestLikes(t)

	assert.Equal(t, 0, l.Count(42))
	assert.False(t, l.HasLiked(42))
}

func TestLikes_ToggleSymmetry(t *testing.T) {
	l := newTestLikes(t)

	count, liked := l.Toggle(42)
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	count, liked = l.Toggle(42)
	assert.Equal(t, 0, count)
	assert.False(t, liked)
}

func TestLikes_CountNeverNegative(t *testing.T) {
	l := newTestLikes(t)

	for i := 0; i < 5; i++ {
		count, _ := l.Toggle(7)
		assert.GreaterOrEqual(t, count, 0)
	}
	assert.GreaterOrEqual(t, l.Count(7), 0)
}

func TestLikes_IndependentStories(t *testing.T) {
	l := newTestLikes(t)

	l.Toggle(1)
	assert.Equal(t, 1, l.Count(1))
	assert.Equal(t, 0, l.Count(2))
	assert.False(t, l.HasLiked(2))
}

func TestLikes_SeedDefaults(t *testing.T) {
	l := newTestLikes(t)

	// Pre-existing counter must not be touched
	l.Toggle(1)
	require.Equal(t, 1, l.Count(1))

	stories := []model.Story{{ID: 1}, {ID: 2}, {ID: 3}}
	l.SeedDefaults(stories)

	assert.Equal(t, 1, l.Count(1))
	for _, id := range []int64{2, 3} {
		count := l.Count(id)
		assert.GreaterOrEqual(t, count, 5)
		assert.LessOrEqual(t, count, 50)
		assert.False(t, l.HasLiked(id), "seeding counts must not mark stories as liked")
	}

	// Seeding again changes nothing
	before := l.Count(2)
	l.SeedDefaults(stories)
	assert.Equal(t, before, l.Count(2))
}

func TestLikes_CorruptDataTreatedAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("story_likes", `not an object`)
	l := NewLikes(kv, zerolog.Nop())

	assert.Equal(t, 0, l.Count(1))
	count, liked := l.Toggle(1)
	assert.Equal(t, 1, count)
	assert.True(t, liked)
}

func TestLikes_PersistedLayout(t *testing.T) {
	kv := NewMemoryKV()
	l := NewLikes(kv, zerolog.Nop())

	l.Toggle(123)

	raw, ok := kv.Get("story_likes")
	require.True(t, ok)
	assert.Contains(t, raw, `"123":1`)
	assert.Contains(t, raw, `"123_user_liked":true`)
}
