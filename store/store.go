package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scenah/story-cli/model"
)

// ErrNotFound is returned when an update, delete-with-result, or publish
// targets an id that is not in the collection.
var ErrNotFound = errors.New("not found")

// Store is the content repository: it owns the stories and drafts
// collections and is the only writer of identity and timestamp fields.
//
// All read-modify-write sequences are serialized by an internal mutex, so
// concurrent callers within one process cannot interleave. Separate
// processes sharing the same database are not serialized; last write wins,
// matching the single-operator deployment this was built for.
type Store struct {
	mu     sync.Mutex
	kv     KV
	log    zerolog.Logger
	lastID int64
}

// New creates a Store over the given key-value adapter.
func New(kv KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// nextID issues a millisecond-timestamp id. Ids must keep increasing even
// when two creates land in the same millisecond, so the last issued id acts
// as a floor. Callers must hold s.mu.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// normalizeTags guarantees the stored tags field is an array, never null.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func readTimeFor(in model.StoryInput) string {
	if in.ReadTime != "" {
		return in.ReadTime
	}
	return model.EstimateReadTime(in.Content)
}

// Stories returns the full published collection, newest first. Absent or
// unreadable data yields an empty collection.
func (s *Store) Stories() []model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadStories()
}

// Drafts returns the full drafts collection, newest first.
func (s *Store) Drafts() []model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadDrafts()
}

// CreateStory publishes new content directly. The store assigns the id,
// publish date, and creation timestamp; the result is what was persisted.
func (s *Store) CreateStory(in model.StoryInput) model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	story := model.Story{
		ID:          s.nextID(now),
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        normalizeTags(in.Tags),
		Image:       in.Image,
		ReadTime:    readTimeFor(in),
		PublishDate: model.DateOnly(now),
		CreatedAt:   model.Timestamp(now),
	}

	stories := append([]model.Story{story}, s.loadStories()...)
	s.saveStories(stories)
	return story
}

// CreateDraft saves new unpublished content.
func (s *Store) CreateDraft(in model.StoryInput) model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	draft := model.Draft{
		ID:        s.nextID(now),
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      normalizeTags(in.Tags),
		Image:     in.Image,
		ReadTime:  readTimeFor(in),
		CreatedAt: model.Timestamp(now),
	}

	drafts := append([]model.Draft{draft}, s.loadDrafts()...)
	s.saveDrafts(drafts)
	return draft
}

// UpdateStory replaces the caller-owned fields of the story with the given
// id and stamps updatedAt. Returns ErrNotFound if the id is absent.
func (s *Store) UpdateStory(id int64, in model.StoryInput) (model.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stories := s.loadStories()
	for i := range stories {
		if stories[i].ID == id {
			stories[i].Title = in.Title
			stories[i].Excerpt = in.Excerpt
			stories[i].Content = in.Content
			stories[i].Category = in.Category
			stories[i].Tags = normalizeTags(in.Tags)
			stories[i].Image = in.Image
			stories[i].ReadTime = readTimeFor(in)
			stories[i].UpdatedAt = model.Timestamp(time.Now())
			s.saveStories(stories)
			return stories[i], nil
		}
	}
	return model.Story{}, fmt.Errorf("story %d: %w", id, ErrNotFound)
}

// UpdateDraft is the drafts counterpart of UpdateStory.
func (s *Store) UpdateDraft(id int64, in model.StoryInput) (model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.loadDrafts()
	for i := range drafts {
		if drafts[i].ID == id {
			drafts[i].Title = in.Title
			drafts[i].Excerpt = in.Excerpt
			drafts[i].Content = in.Content
			drafts[i].Category = in.Category
			drafts[i].Tags = normalizeTags(in.Tags)
			drafts[i].Image = in.Image
			drafts[i].ReadTime = readTimeFor(in)
			drafts[i].UpdatedAt = model.Timestamp(time.Now())
			s.saveDrafts(drafts)
			return drafts[i], nil
		}
	}
	return model.Draft{}, fmt.Errorf("draft %d: %w", id, ErrNotFound)
}

// DeleteStory removes the story with the given id. Deleting an absent id is
// a no-op, not an error; deletion is immediate and unrecoverable.
func (s *Store) DeleteStory(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stories := s.loadStories()
	kept := make([]model.Story, 0, len(stories))
	for _, st := range stories {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	s.saveStories(kept)
}

// DeleteDraft removes the draft with the given id, no-op if absent.
func (s *Store) DeleteDraft(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.loadDrafts()
	kept := make([]model.Draft, 0, len(drafts))
	for _, d := range drafts {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.saveDrafts(kept)
}

// PublishDraft moves a draft into the published collection. The story keeps
// the draft's id and creation timestamp and gets a fresh publish date and
// publishedAt. Returns ErrNotFound if the draft id is absent.
//
// The stories write happens before the draft removal: a failure between the
// two leaves the record in both collections rather than in neither.
func (s *Store) PublishDraft(id int64) (model.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.loadDrafts()
	idx := -1
	for i := range drafts {
		if drafts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Story{}, fmt.Errorf("draft %d: %w", id, ErrNotFound)
	}

	d := drafts[idx]
	now := time.Now()
	story := model.Story{
		ID:          d.ID,
		Title:       d.Title,
		Excerpt:     d.Excerpt,
		Content:     d.Content,
		Category:    d.Category,
		Tags:        normalizeTags(d.Tags),
		Image:       d.Image,
		ReadTime:    d.ReadTime,
		PublishDate: model.DateOnly(now),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		PublishedAt: model.Timestamp(now),
	}

	stories := append([]model.Story{story}, s.loadStories()...)
	if !s.saveStories(stories) {
		return model.Story{}, fmt.Errorf("failed to persist published story %d", id)
	}

	drafts = append(drafts[:idx], drafts[idx+1:]...)
	s.saveDrafts(drafts)
	return story, nil
}

// StoryByID looks up a published story by id.
func (s *Store) StoryByID(id int64) (model.Story, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.loadStories() {
		if st.ID == id {
			return st, true
		}
	}
	return model.Story{}, false
}

// DraftByID looks up a draft by id.
func (s *Store) DraftByID(id int64) (model.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.loadDrafts() {
		if d.ID == id {
			return d, true
		}
	}
	return model.Draft{}, false
}

// SearchStories returns stories matching a case-insensitive substring query
// against title, excerpt, content, or any tag. An empty query returns the
// full collection.
func (s *Store) SearchStories(query string) []model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Story
	for _, st := range s.loadStories() {
		if st.Matches(query) {
			matched = append(matched, st)
		}
	}
	return matched
}

// StoriesByCategory returns stories whose category matches exactly
// (case-sensitive).
func (s *Store) StoriesByCategory(category string) []model.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Story
	for _, st := range s.loadStories() {
		if st.Category == category {
			matched = append(matched, st)
		}
	}
	return matched
}

// Categories returns the distinct categories across all stories, sorted.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var categories []string
	for _, st := range s.loadStories() {
		if !seen[st.Category] {
			seen[st.Category] = true
			categories = append(categories, st.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Tags returns the distinct tags across all stories, sorted.
func (s *Store) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var tags []string
	for _, st := range s.loadStories() {
		for _, t := range st.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// loadStories reads the published collection, treating absent or corrupt
// data as empty. Callers must hold s.mu.
func (s *Store) loadStories() []model.Story {
	raw, ok := s.kv.Get(storiesKey)
	if !ok {
		return nil
	}
	var stories []model.Story
	if err := json.Unmarshal([]byte(raw), &stories); err != nil {
		s.log.Error().Err(err).Msg("stories data unreadable, treating as empty")
		return nil
	}
	for i := range stories {
		stories[i].Tags = normalizeTags(stories[i].Tags)
	}
	return stories
}

func (s *Store) saveStories(stories []model.Story) bool {
	if stories == nil {
		stories = []model.Story{}
	}
	data, err := json.Marshal(stories)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode stories")
		return false
	}
	return s.kv.Set(storiesKey, string(data))
}

func (s *Store) loadDrafts() []model.Draft {
	raw, ok := s.kv.Get(draftsKey)
	if !ok {
		return nil
	}
	var drafts []model.Draft
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		s.log.Error().Err(err).Msg("drafts data unreadable, treating as empty")
		return nil
	}
	for i := range drafts {
		drafts[i].Tags = normalizeTags(drafts[i].Tags)
	}
	return drafts
}

func (s *Store) saveDrafts(drafts []model.Draft) bool {
	if drafts == nil {
		drafts = []model.Draft{}
	}
	data, err := json.Marshal(drafts)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode drafts")
		return false
	}
	return s.kv.Set(draftsKey, string(data))
}
