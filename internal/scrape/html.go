package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (compatible; craigslist-agent/1.0)"

// HTMLScraper parses craigslist search result pages directly. It is
// the fallback for searches whose RSS feed is unavailable.
type HTMLScraper struct {
	client *http.Client
}

// NewHTMLScraper creates an HTMLScraper.
func NewHTMLScraper() *HTMLScraper {
	return &HTMLScraper{client: &http.Client{Timeout: 20 * time.Second}}
}

// Scrape fetches a search results page and extracts its hits.
func (h *HTMLScraper) Scrape(ctx context.Context, searchURL string) ([]Hit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned %d", resp.StatusCode)
	}

	hits, err := ParseSearchHTML(resp.Body, searchURL)
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// ParseSearchHTML extracts posting hits from a search results page.
// It handles both the current list markup (li.cl-search-result) and
// the older gallery rows (li.result-row).
func ParseSearchHTML(r io.Reader, searchURL string) ([]Hit, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	city := cityFromURL(searchURL)
	category := categoryFromURL(searchURL)

	var hits []Hit
	appendHit := func(href, title, date string) {
		href = strings.TrimSpace(href)
		title = strings.TrimSpace(title)
		if href == "" || title == "" || len(hits) >= maxPerSearch {
			return
		}
		hits = append(hits, Hit{
			URL:        href,
			Title:      title,
			PostedDate: date,
			City:       city,
			Category:   category,
		})
	}

	doc.Find("li.cl-search-result").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.posting-title").First()
		href, _ := link.Attr("href")
		title := link.Find(".label").First().Text()
		if title == "" {
			title, _ = s.Attr("title")
		}
		date, _ := s.Find("[title]").First().Attr("title")
		appendHit(href, title, normalizeDate(date))
	})

	if len(hits) == 0 {
		doc.Find("li.result-row").Each(func(_ int, s *goquery.Selection) {
			link := s.Find("a.result-title").First()
			href, _ := link.Attr("href")
			date, _ := s.Find("time.result-date").First().Attr("datetime")
			appendHit(href, link.Text(), normalizeDate(date))
		})
	}

	return hits, nil
}

// normalizeDate truncates craigslist datetime strings to YYYY-MM-DD.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		candidate := s[:10]
		if _, err := time.Parse("2006-01-02", candidate); err == nil {
			return candidate
		}
	}
	return ""
}
