// Package feed provides RSS import and export for story-cli: pulling posts
// from an existing feed into the drafts collection, and syndicating
// published stories back out as RSS 2.0.
package feed

import (
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/scenah/story-cli/model"
)

// Importer fetches an RSS/Atom feed and converts its items into editor
// input, ready to be saved as drafts. Identity and timestamps stay with the
// store; the importer only fills the caller-owned fields.
type Importer struct {
	parser *gofeed.Parser
}

// NewImporter creates a new Importer.
func NewImporter() *Importer {
	return &Importer{
		parser: gofeed.NewParser(),
	}
}

// Fetch retrieves and converts a feed from a URL.
func (im *Importer) Fetch(url string) ([]model.StoryInput, error) {
	parsed, err := im.parser.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed from %s: %w", url, err)
	}
	return im.convert(parsed), nil
}

// Parse converts feed content from a string.
func (im *Importer) Parse(content string) ([]model.StoryInput, error) {
	if content == "" {
		return nil, fmt.Errorf("feed content is empty")
	}
	parsed, err := im.parser.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return im.convert(parsed), nil
}

func (im *Importer) convert(gf *gofeed.Feed) []model.StoryInput {
	var inputs []model.StoryInput
	for _, item := range gf.Items {
		inputs = append(inputs, convertItem(item))
	}
	return inputs
}

// convertItem maps a feed item onto editor input. The first category becomes
// the story category, the rest become tags.
func convertItem(item *gofeed.Item) model.StoryInput {
	in := model.StoryInput{
		Title:   item.Title,
		Excerpt: item.Description,
		Tags:    []string{},
	}

	// Prefer full content over description
	if item.Content != "" {
		in.Content = item.Content
	} else {
		in.Content = item.Description
	}

	if len(item.Categories) > 0 {
		in.Category = item.Categories[0]
		in.Tags = append(in.Tags, item.Categories[1:]...)
	}

	if item.Image != nil {
		in.Image = item.Image.URL
	}

	in.ReadTime = model.EstimateReadTime(in.Content)
	return in
}
