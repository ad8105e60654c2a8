package feed

import (
	"bytes"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenah/story-cli/model"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Another Blog</title>
    <link>https://example.com</link>
    <description>Posts worth stealing back</description>
    <item>
      <title>Whispers in the Garden</title>
      <link>https://example.com/posts/1</link>
      <description>A botanist discovers that plants can communicate.</description>
      <category>Fantasy</category>
      <category>nature</category>
      <category>mystery</category>
    </item>
    <item>
      <title>Untitled Fragment</title>
      <link>https://example.com/posts/2</link>
      <description>Just a note.</description>
    </item>
  </channel>
</rss>`

func TestImporter_Parse(t *testing.T) {
	inputs, err := NewImporter().Parse(sampleRSS)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	first := inputs[0]
	assert.Equal(t, "Whispers in the Garden", first.Title)
	assert.Equal(t, "A botanist discovers that plants can communicate.", first.Excerpt)
	assert.NotEmpty(t, first.Content)
	assert.Equal(t, "Fantasy", first.Category, "first category becomes the story category")
	assert.Equal(t, []string{"nature", "mystery"}, first.Tags, "remaining categories become tags")
	assert.NotEmpty(t, first.ReadTime)

	second := inputs[1]
	assert.Empty(t, second.Category)
	assert.NotNil(t, second.Tags)
	assert.Empty(t, second.Tags)
}

func TestImporter_Parse_Invalid(t *testing.T) {
	im := NewImporter()

	_, err := im.Parse("")
	assert.Error(t, err)

	_, err = im.Parse("this is not a feed")
	assert.Error(t, err)
}

func TestGenerate_RoundTrip(t *testing.T) {
	stories := []model.Story{
		{
			ID:          1705312800000,
			Title:       "The Last Sunset",
			Excerpt:     "One person discovers the beauty of darkness.",
			Category:    "Science Fiction",
			Tags:        []string{"dystopian", "adventure"},
			PublishDate: "2024-01-15",
		},
		{
			ID:          1703052000000,
			Title:       "The Last Letter",
			Excerpt:     "A love story hidden in the walls.",
			Category:    "Romance",
			PublishDate: "2023-12-20",
		},
	}
	site := Site{
		Title:       "Stories",
		Link:        "https://stories.example.com",
		Description: "Published stories",
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, site, stories))

	parsed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)

	assert.Equal(t, "Stories", parsed.Title)
	require.Len(t, parsed.Items, 2)

	first := parsed.Items[0]
	assert.Equal(t, "The Last Sunset", first.Title)
	assert.Equal(t, "https://stories.example.com/stories/1705312800000", first.Link)
	assert.Equal(t, "1705312800000", first.GUID)
	assert.Equal(t, []string{"Science Fiction", "dystopian", "adventure"}, first.Categories)
	require.NotNil(t, first.PublishedParsed)
	assert.Equal(t, "2024-01-15", first.PublishedParsed.Format("2006-01-02"))
}

func TestGenerate_EmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, Site{Title: "Stories"}, nil))

	parsed, err := gofeed.NewParser().ParseString(buf.String())
	require.NoError(t, err)
	assert.Empty(t, parsed.Items)
}
