package store

import (
	"time"

	"github.com/scenah/story-cli/model"
)

// Migrate copies the bundled example stories into the store if and only if
// the published collection is empty. Each seeded story gets a createdAt
// derived from its publish date (or now, if unparseable) and a fresh
// updatedAt. Runs at process start, before anything renders.
//
// Returns false only when the seed set could not be persisted; the failure
// is logged and not retried.
func (s *Store) Migrate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.loadStories()) > 0 {
		s.log.Debug().Msg("stories already present, skipping migration")
		return true
	}

	now := time.Now()
	stories := make([]model.Story, len(seedStories))
	for i, st := range seedStories {
		created := now
		if t, err := time.Parse("2006-01-02", st.PublishDate); err == nil {
			created = t
		}
		st.CreatedAt = model.Timestamp(created)
		st.UpdatedAt = model.Timestamp(now)
		st.Tags = normalizeTags(st.Tags)
		stories[i] = st
	}

	if !s.saveStories(stories) {
		s.log.Error().Msg("failed to persist migrated stories")
		return false
	}
	s.log.Info().Int("count", len(stories)).Msg("migrated bundled stories")
	return true
}
