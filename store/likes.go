package store

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/scenah/story-cli/model"
)

// Likes counts per-story likes and tracks whether this installation has
// liked each story. It is independent of the content repository: deleting a
// story does not clear its counter.
//
// The persisted layout is a single flattened JSON object: "{id}" maps to the
// count and "{id}_user_liked" to the local liked flag.
type Likes struct {
	mu  sync.Mutex
	kv  KV
	log zerolog.Logger
}

// NewLikes creates a like counter over the given key-value adapter.
func NewLikes(kv KV, log zerolog.Logger) *Likes {
	return &Likes{kv: kv, log: log}
}

// Count returns the like count for a story, zero if unseen.
func (l *Likes) Count(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return countValue(l.load()[countKey(id)])
}

// HasLiked reports whether this installation has liked the story.
func (l *Likes) HasLiked(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return flagValue(l.load()[likedKey(id)])
}

// Toggle flips the liked flag for a story: the count goes up on like and
// down on unlike, never below zero. Returns the new count and flag.
func (l *Likes) Toggle(id int64) (count int, liked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	likes := l.load()
	count = countValue(likes[countKey(id)])
	liked = flagValue(likes[likedKey(id)])

	if liked {
		count--
		if count < 0 {
			count = 0
		}
		liked = false
	} else {
		count++
		liked = true
	}

	likes[countKey(id)] = count
	likes[likedKey(id)] = liked
	l.save(likes)
	return count, liked
}

// SeedDefaults assigns a random count between 5 and 50 to every story that
// has no counter yet. Cosmetic bootstrap only; existing counts are never
// touched.
func (l *Likes) SeedDefaults(stories []model.Story) {
	l.mu.Lock()
	defer l.mu.Unlock()

	likes := l.load()
	changed := false
	for _, st := range stories {
		if _, ok := likes[countKey(st.ID)]; !ok {
			likes[countKey(st.ID)] = rand.Intn(46) + 5
			changed = true
		}
	}
	if changed {
		l.save(likes)
	}
}

func countKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func likedKey(id int64) string {
	return countKey(id) + "_user_liked"
}

// countValue coerces a decoded JSON value to an int count.
func countValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func flagValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func (l *Likes) load() map[string]any {
	raw, ok := l.kv.Get(likesKey)
	if !ok {
		return make(map[string]any)
	}
	var likes map[string]any
	if err := json.Unmarshal([]byte(raw), &likes); err != nil {
		l.log.Error().Err(err).Msg("likes data unreadable, treating as empty")
		return make(map[string]any)
	}
	return likes
}

func (l *Likes) save(likes map[string]any) bool {
	data, err := json.Marshal(likes)
	if err != nil {
		l.log.Error().Err(err).Msg("failed to encode likes")
		return false
	}
	return l.kv.Set(likesKey, string(data))
}
