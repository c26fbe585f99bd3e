// Package fetch fills in posting bodies. Postings arrive from scrape
// with only the search-result metadata; this pass downloads each
// posting page and extracts the text.
package fetch

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/Spydrcode/craigslist-agent-sub001/internal/database"
)

// Result holds the results of a body fetch run.
type Result struct {
	Fetched int
	Failed  int
}

// BodyFetcher fetches full posting text via HTTP.
type BodyFetcher struct {
	db     *database.DB
	client *http.Client
}

// NewBodyFetcher creates a new body fetcher.
func NewBodyFetcher(db *database.DB, timeout time.Duration) *BodyFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &BodyFetcher{
		db: db,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// FetchMissingBodies fetches bodies for postings that have none.
func (f *BodyFetcher) FetchMissingBodies() *Result {
	postings, err := f.db.GetPostingsNeedingFetch()
	if err != nil {
		log.Printf("Error getting postings needing fetch: %v", err)
		return &Result{}
	}

	if len(postings) == 0 {
		log.Println("No postings need body fetching")
		return &Result{}
	}

	result := &Result{}
	failedDomains := make(map[string]struct{})

	for _, posting := range postings {
		u, _ := url.Parse(posting.URL)
		domain := ""
		if u != nil {
			domain = strings.ToLower(u.Host)
		}

		if _, failed := failedDomains[domain]; failed {
			f.db.MarkPostingFetchAttempted(posting.ID)
			result.Failed++
			continue
		}

		body, httpErr := f.fetchPostingBody(posting.URL)
		if httpErr != nil {
			f.db.MarkPostingFetchAttempted(posting.ID)
			result.Failed++
			if domain != "" {
				failedDomains[domain] = struct{}{}
			}
			log.Printf("HTTP error for %s, skipping remaining from %s", posting.URL, domain)
			continue
		}

		if body != "" {
			f.db.UpdatePostingBody(posting.ID, &body)
			result.Fetched++
			log.Printf("Fetched body for: %s", posting.Title)
		} else {
			f.db.MarkPostingFetchAttempted(posting.ID)
			result.Failed++
			log.Printf("No extractable body from: %s", posting.URL)
		}
	}

	log.Printf("Body fetch complete: %d fetched, %d failed", result.Fetched, result.Failed)
	return result
}

func (f *BodyFetcher) fetchPostingBody(postingURL string) (string, error) {
	req, err := http.NewRequest("GET", postingURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; craigslist-agent/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil // connection error, not HTTP error
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &httpError{code: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}

	return ExtractBody(string(bodyBytes), postingURL), nil
}

// ExtractBody pulls posting text out of a craigslist page. The
// #postingbody element is tried first; readability is the fallback
// for non-craigslist layouts.
func ExtractBody(html, pageURL string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		sel := doc.Find("#postingbody").First()
		if sel.Length() > 0 {
			sel.Find(".print-information").Remove()
			if text := cleanBody(sel.Text()); text != "" {
				return text
			}
		}
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}

	text := cleanBody(article.TextContent)
	if len(text) > 100 {
		return text
	}
	return ""
}

// cleanBody drops the boilerplate QR banner and normalizes whitespace.
func cleanBody(text string) string {
	text = strings.ReplaceAll(text, "QR Code Link to This Post", "")
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return http.StatusText(e.code)
}
