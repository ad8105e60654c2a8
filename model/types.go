// Package model defines the core data structures for story-cli.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Story represents a published piece of content, visible on the public site.
//
// The JSON field names match the persisted storage schema exactly; changing
// them breaks round-tripping with existing data.
type Story struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	ReadTime    string   `json:"readTime"`
	PublishDate string   `json:"publishDate"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
}

// Draft represents an unpublished, editor-only piece of content. Same shape
// as a Story minus a guaranteed publish date; title, excerpt and category may
// be empty while the author is still working.
type Draft struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	ReadTime    string   `json:"readTime"`
	PublishDate string   `json:"publishDate,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// StoryInput holds the fields the editor supplies when creating or updating
// content. Identity and timestamp fields are owned by the store, never the
// caller.
type StoryInput struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image"`
	ReadTime string   `json:"readTime"`
}

// Validate checks the input is publishable: a story needs a title and content.
func (in *StoryInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

// ValidateDraft checks the input is worth saving. Drafts may be missing
// almost everything, but an entirely empty submission is rejected.
func (in *StoryInput) ValidateDraft() error {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Content) == "" {
		return errors.New("draft needs a title or content")
	}
	return nil
}

// HasTag checks if the story carries the specified tag.
func (s *Story) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether the story matches a case-insensitive substring
// query against its title, excerpt, content, or any tag. An empty query
// matches everything.
func (s *Story) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Excerpt), q) ||
		strings.Contains(strings.ToLower(s.Content), q) {
		return true
	}
	for _, t := range s.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// wordsPerMinute is the reading speed assumed by read-time estimates.
const wordsPerMinute = 200

// EstimateReadTime derives a display string like "5 min read" from the word
// count of content, rounded up, minimum one minute.
func EstimateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Timestamp formats t the way the storage schema expects timestamps
// (ISO-8601 / RFC 3339, UTC).
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// DateOnly formats t as a calendar date (YYYY-MM-DD) for publish dates.
func DateOnly(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
