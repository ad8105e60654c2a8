package store

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenah/story-cli/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemoryKV(), zerolog.Nop())
}

// failKV refuses every operation, simulating unavailable storage.
type failKV struct{}

func (failKV) Get(string) (string, bool) { return "", false }
func (failKV) Set(string, string) bool   { return false }
func (failKV) Delete(string)             {}

func TestStore_CreateAndGetStory(t *testing.T) {
	s := newTestStore(t)

	in := model.StoryInput{
		Title:    "The Last Sunset",
		Excerpt:  "One person discovers the beauty of darkness.",
		Content:  "In a world where the sun never sets...",
		Category: "Science Fiction",
		Tags:     []string{"dystopian", "adventure"},
		Image:    "https://example.com/sunset.jpg",
	}
	created := s.CreateStory(in)

	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	_, err := time.Parse(time.RFC3339, created.CreatedAt)
	assert.NoError(t, err, "createdAt should be RFC 3339")
	_, err = time.Parse("2006-01-02", created.PublishDate)
	assert.NoError(t, err, "publishDate should be YYYY-MM-DD")
	assert.NotEmpty(t, created.ReadTime)

	// Round-trip: everything the caller supplied comes back unchanged
	got, ok := s.StoryByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Excerpt, got.Excerpt)
	assert.Equal(t, in.Content, got.Content)
	assert.Equal(t, in.Category, got.Category)
	assert.Equal(t, in.Tags, got.Tags)
	assert.Equal(t, in.Image, got.Image)
}

func TestStore_CreateStory_PrependsNewest(t *testing.T) {
	s := newTestStore(t)

	first := s.CreateStory(model.StoryInput{Title: "First", Content: "a"})
	second := s.CreateStory(model.StoryInput{Title: "Second", Content: "b"})

	stories := s.Stories()
	require.Len(t, stories, 2)
	assert.Equal(t, second.ID, stories[0].ID, "newest story should come first")
	assert.Equal(t, first.ID, stories[1].ID)
}

func TestStore_MonotonicIDs(t *testing.T) {
	s := newTestStore(t)

	// Rapid creates can land in the same millisecond; ids must still differ.
	var last int64
	for i := 0; i < 10; i++ {
		story := s.CreateStory(model.StoryInput{Title: "Story", Content: "text"})
		assert.Greater(t, story.ID, last)
		last = story.ID
	}
}

func TestStore_TagsNeverNil(t *testing.T) {
	s := newTestStore(t)

	story := s.CreateStory(model.StoryInput{Title: "No tags", Content: "text"})
	assert.NotNil(t, story.Tags)
	assert.Empty(t, story.Tags)

	got, ok := s.StoryByID(story.ID)
	require.True(t, ok)
	assert.NotNil(t, got.Tags)
}

func TestStore_UpdateStory(t *testing.T) {
	s := newTestStore(t)

	created := s.CreateStory(model.StoryInput{Title: "Old Title", Content: "old"})
	require.Empty(t, created.UpdatedAt)

	updated, err := s.UpdateStory(created.ID, model.StoryInput{
		Title:   "New Title",
		Content: "new content",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.NotEmpty(t, updated.UpdatedAt)

	got, ok := s.StoryByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "New Title", got.Title)
}

func TestStore_UpdateStory_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateStory(12345, model.StoryInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteStory_Idempotent(t *testing.T) {
	s := newTestStore(t)

	story := s.CreateStory(model.StoryInput{Title: "Doomed", Content: "text"})
	other := s.CreateStory(model.StoryInput{Title: "Survivor", Content: "text"})

	s.DeleteStory(story.ID)
	_, ok := s.StoryByID(story.ID)
	assert.False(t, ok)

	// Second delete of the same id is a quiet no-op
	s.DeleteStory(story.ID)

	stories := s.Stories()
	require.Len(t, stories, 1)
	assert.Equal(t, other.ID, stories[0].ID)
}

func TestStore_DraftLifecycle(t *testing.T) {
	s := newTestStore(t)

	draft := s.CreateDraft(model.StoryInput{Title: "Work in progress"})
	assert.NotZero(t, draft.ID)
	assert.Empty(t, draft.PublishDate, "drafts have no publish date")

	got, ok := s.DraftByID(draft.ID)
	require.True(t, ok)
	assert.Equal(t, "Work in progress", got.Title)

	updated, err := s.UpdateDraft(draft.ID, model.StoryInput{Title: "Still in progress", Content: "more"})
	require.NoError(t, err)
	assert.Equal(t, "Still in progress", updated.Title)

	s.DeleteDraft(draft.ID)
	_, ok = s.DraftByID(draft.ID)
	assert.False(t, ok)
	s.DeleteDraft(draft.ID) // idempotent
}

func TestStore_PublishDraft_PreservesIdentity(t *testing.T) {
	s := newTestStore(t)

	draft := s.CreateDraft(model.StoryInput{
		Title:   "Ready to go",
		Content: "finished content",
		Tags:    []string{"fiction"},
	})

	story, err := s.PublishDraft(draft.ID)
	require.NoError(t, err)

	assert.Equal(t, draft.ID, story.ID, "published story keeps the draft id")
	assert.Equal(t, draft.CreatedAt, story.CreatedAt, "creation timestamp survives publishing")
	assert.NotEmpty(t, story.PublishDate)
	assert.NotEmpty(t, story.PublishedAt)

	_, ok := s.DraftByID(draft.ID)
	assert.False(t, ok, "draft is removed on publish")
	_, ok = s.StoryByID(draft.ID)
	assert.True(t, ok)
}

func TestStore_PublishDraft_NotFound(t *testing.T) {
	s := newTestStore(t)
	s.CreateDraft(model.StoryInput{Title: "Unrelated"})

	_, err := s.PublishDraft(99999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.Drafts(), 1, "failed publish must not mutate drafts")
	assert.Empty(t, s.Stories())
}

func TestStore_SearchStories(t *testing.T) {
	s := newTestStore(t)

	target := s.CreateStory(model.StoryInput{
		Title:   "The Library of Lost Dreams",
		Content: "A librarian's quest.",
	})
	s.CreateStory(model.StoryInput{Title: "The Last Letter", Content: "Letters in the walls."})
	s.CreateStory(model.StoryInput{Title: "Whispers in the Garden", Content: "Plants can talk."})

	matched := s.SearchStories("dream")
	require.Len(t, matched, 1)
	assert.Equal(t, target.ID, matched[0].ID)

	// Empty query returns the full collection
	assert.Len(t, s.SearchStories(""), 3)

	// Tag matches count too
	tagged := s.CreateStory(model.StoryInput{
		Title:   "Untitled",
		Content: "nothing relevant",
		Tags:    []string{"daydreaming"},
	})
	matched = s.SearchStories("dream")
	require.Len(t, matched, 2)
	assert.Equal(t, tagged.ID, matched[0].ID)
}

func TestStore_StoriesByCategory(t *testing.T) {
	s := newTestStore(t)

	s.CreateStory(model.StoryInput{Title: "A", Content: "x", Category: "Fantasy"})
	s.CreateStory(model.StoryInput{Title: "B", Content: "x", Category: "Romance"})
	s.CreateStory(model.StoryInput{Title: "C", Content: "x", Category: "Fantasy"})

	assert.Len(t, s.StoriesByCategory("Fantasy"), 2)
	assert.Empty(t, s.StoriesByCategory("fantasy"), "category match is case-sensitive")
}

func TestStore_CategoriesAndTags(t *testing.T) {
	s := newTestStore(t)

	s.CreateStory(model.StoryInput{Title: "A", Content: "x", Category: "Romance", Tags: []string{"love", "letters"}})
	s.CreateStory(model.StoryInput{Title: "B", Content: "x", Category: "Fantasy", Tags: []string{"nature", "love"}})

	assert.Equal(t, []string{"Fantasy", "Romance"}, s.Categories())
	assert.Equal(t, []string{"letters", "love", "nature"}, s.Tags())
}

func TestStore_CorruptDataTreatedAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("stories", `{definitely not json`)
	kv.Set("drafts", `also broken`)
	s := New(kv, zerolog.Nop())

	assert.Empty(t, s.Stories())
	assert.Empty(t, s.Drafts())

	// A create overwrites the corrupt value and recovers
	story := s.CreateStory(model.StoryInput{Title: "Fresh start", Content: "text"})
	got, ok := s.StoryByID(story.ID)
	require.True(t, ok)
	assert.Equal(t, "Fresh start", got.Title)
}

func TestStore_UnavailableStorage(t *testing.T) {
	s := New(failKV{}, zerolog.Nop())

	// Reads degrade to empty, writes do not panic
	assert.Empty(t, s.Stories())
	story := s.CreateStory(model.StoryInput{Title: "Ghost", Content: "never persisted"})
	assert.NotZero(t, story.ID)

	_, err := s.PublishDraft(story.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
