package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/scenah/story-cli/model"
)

// Site describes the channel metadata for an exported feed.
type Site struct {
	Title       string
	Link        string
	Description string
}

// RSS represents the root RSS 2.0 structure.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

// Channel contains feed metadata and the exported items.
type Channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []Item `xml:"item"`
}

// Item represents a single published story in the feed.
type Item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link,omitempty"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category,omitempty"`
	GUID        string   `xml:"guid,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"`
}

// Generate writes an RSS 2.0 feed of the published stories.
func Generate(w io.Writer, site Site, stories []model.Story) error {
	channel := Channel{
		Title:         site.Title,
		Link:          site.Link,
		Description:   site.Description,
		LastBuildDate: time.Now().Format(time.RFC1123Z),
	}

	for _, st := range stories {
		item := Item{
			Title:       st.Title,
			Description: st.Excerpt,
			GUID:        fmt.Sprintf("%d", st.ID),
			PubDate:     pubDate(st.PublishDate),
		}
		if site.Link != "" {
			item.Link = fmt.Sprintf("%s/stories/%d", site.Link, st.ID)
		}
		if st.Category != "" {
			item.Categories = append(item.Categories, st.Category)
		}
		item.Categories = append(item.Categories, st.Tags...)
		channel.Items = append(channel.Items, item)
	}

	rss := RSS{Version: "2.0", Channel: channel}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	if err := encoder.Encode(rss); err != nil {
		return fmt.Errorf("failed to encode RSS: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write final newline: %w", err)
	}
	return nil
}

// pubDate converts a stored publish date (YYYY-MM-DD) to the RFC 1123 form
// RSS expects. Unparseable dates are passed through untouched.
func pubDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format(time.RFC1123Z)
}
