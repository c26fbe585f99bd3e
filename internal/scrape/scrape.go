// Package scrape discovers job postings from configured craigslist
// searches. Each search is read through its RSS feed first; when the
// feed fails the HTML results page is parsed instead. Discovered
// postings are stored with their body empty, to be filled by fetch.
package scrape

import (
	"context"
	"log"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/config"
	"github.com/Spydrcode/craigslist-agent-sub001/internal/database"
)

// Result holds the results of a scrape run.
type Result struct {
	TotalFound  int
	NewPostings int
	Duplicates  int
	Searches    map[string]int
}

// Scraper orchestrates posting discovery across configured searches.
type Scraper struct {
	db       *database.DB
	searches []config.Search
	feeds    *FeedParser
	html     *HTMLScraper
}

// NewScraper creates a scraper over the configured searches.
func NewScraper(cfg *config.Config, db *database.DB) *Scraper {
	return &Scraper{
		db:       db,
		searches: cfg.Sources.Searches,
		feeds:    NewFeedParser(),
		html:     NewHTMLScraper(),
	}
}

// Scrape runs every configured search and stores new postings.
func (s *Scraper) Scrape(ctx context.Context) *Result {
	r := &Result{Searches: make(map[string]int)}

	for _, search := range s.searches {
		name := search.Name
		if name == "" {
			name = search.URL
		}

		hits := s.runSearch(ctx, search)
		r.TotalFound += len(hits)

		for _, hit := range hits {
			var city, category, postedDate, snippet *string
			if hit.City != "" {
				city = &hit.City
			}
			if hit.Category != "" {
				category = &hit.Category
			}
			if hit.PostedDate != "" {
				postedDate = &hit.PostedDate
			}
			if hit.Snippet != "" {
				snippet = &hit.Snippet
			}

			id, _ := s.db.InsertPosting(hit.URL, hit.Title, city, category, postedDate, snippet)
			if id > 0 {
				r.NewPostings++
				r.Searches[name]++
			} else {
				r.Duplicates++
			}
		}
	}

	log.Printf("Scrape complete: %d found, %d new, %d duplicates", r.TotalFound, r.NewPostings, r.Duplicates)
	return r
}

func (s *Scraper) runSearch(ctx context.Context, search config.Search) []Hit {
	rss := search.RSS
	if rss == "" {
		rss = RSSURL(search.URL)
	}

	hits, err := s.feeds.Parse(rss)
	if err == nil {
		return hits
	}
	log.Printf("RSS failed for %s (%v), falling back to HTML", search.URL, err)

	hits, err = s.html.Scrape(ctx, search.URL)
	if err != nil {
		log.Printf("HTML scrape failed for %s: %v", search.URL, err)
		return nil
	}
	return hits
}
