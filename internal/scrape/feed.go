package scrape

import (
	"log"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

const maxPerSearch = 50

// Hit is one posting discovered by a search.
type Hit struct {
	URL        string
	Title      string
	PostedDate string // YYYY-MM-DD or empty
	Snippet    string
	City       string
	Category   string
}

// FeedParser reads craigslist search RSS feeds.
type FeedParser struct {
	parser *gofeed.Parser
}

// NewFeedParser creates a new FeedParser.
func NewFeedParser() *FeedParser {
	return &FeedParser{parser: gofeed.NewParser()}
}

// Parse reads one search feed and returns its hits.
func (fp *FeedParser) Parse(feedURL string) ([]Hit, error) {
	feed, err := fp.parser.ParseURL(feedURL)
	if err != nil {
		return nil, err
	}

	city := cityFromURL(feedURL)
	category := categoryFromURL(feedURL)

	var hits []Hit
	for _, item := range feed.Items {
		if len(hits) >= maxPerSearch {
			break
		}
		hit := parseItem(item, city, category)
		if hit == nil {
			continue
		}
		hits = append(hits, *hit)
	}

	log.Printf("Parsed %d hits from %s", len(hits), feedURL)
	return hits, nil
}

func parseItem(item *gofeed.Item, city, category string) *Hit {
	itemURL := item.Link
	if itemURL == "" {
		itemURL = item.GUID
	}
	if itemURL == "" {
		return nil
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		return nil
	}

	var postedDate string
	if item.PublishedParsed != nil {
		postedDate = item.PublishedParsed.Format("2006-01-02")
	} else if item.UpdatedParsed != nil {
		postedDate = item.UpdatedParsed.Format("2006-01-02")
	}

	return &Hit{
		URL:        itemURL,
		Title:      title,
		PostedDate: postedDate,
		Snippet:    stripHTML(item.Description),
		City:       city,
		Category:   category,
	}
}

// RSSURL derives the RSS endpoint for a craigslist search URL by
// forcing format=rss onto its query string.
func RSSURL(searchURL string) string {
	u, err := url.Parse(searchURL)
	if err != nil {
		return searchURL
	}
	q := u.Query()
	q.Set("format", "rss")
	u.RawQuery = q.Encode()
	return u.String()
}

// cityFromURL reads the craigslist subdomain: denver.craigslist.org -> denver.
func cityFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	parts := strings.Split(host, ".")
	if len(parts) >= 3 && strings.Contains(host, "craigslist") {
		return parts[0]
	}
	return ""
}

// categoryFromURL reads the search category code: /search/jjj -> jjj.
func categoryFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "search" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func stripHTML(text string) string {
	var result strings.Builder
	inTag := false
	for _, r := range text {
		if r == '<' {
			inTag = true
			result.WriteRune(' ')
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	s := result.String()
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")

	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
