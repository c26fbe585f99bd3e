package scrape

import (
	"strings"
	"testing"
)

func TestRSSURL(t *testing.T) {
	got := RSSURL("https://denver.craigslist.org/search/jjj?query=hiring")
	if !strings.Contains(got, "format=rss") {
		t.Errorf("expected format=rss, got %q", got)
	}
	if !strings.Contains(got, "query=hiring") {
		t.Errorf("original query params must survive, got %q", got)
	}

	// Already present: stays single.
	got = RSSURL("https://denver.craigslist.org/search/jjj?format=rss")
	if strings.Count(got, "format=rss") != 1 {
		t.Errorf("format param duplicated: %q", got)
	}
}

func TestCityFromURL(t *testing.T) {
	cases := map[string]string{
		"https://denver.craigslist.org/search/jjj": "denver",
		"https://sfbay.craigslist.org/search/lab":  "sfbay",
		"https://example.com/search/jjj":           "",
		"not a url":                                "",
	}
	for rawURL, want := range cases {
		if got := cityFromURL(rawURL); got != want {
			t.Errorf("%q: expected %q, got %q", rawURL, want, got)
		}
	}
}

func TestCategoryFromURL(t *testing.T) {
	if got := categoryFromURL("https://denver.craigslist.org/search/jjj?query=x"); got != "jjj" {
		t.Errorf("expected jjj, got %q", got)
	}
	if got := categoryFromURL("https://denver.craigslist.org/about"); got != "" {
		t.Errorf("expected empty category, got %q", got)
	}
}

const listMarkup = `
<html><body><ol>
<li class="cl-search-result" title="Hiring CDL Drivers">
  <a class="cl-app-anchor text-only posting-title" href="https://denver.craigslist.org/jjj/d/hiring-cdl-drivers/1.html">
    <span class="label">Hiring CDL Drivers</span>
  </a>
  <div class="meta"><span title="2026-08-20 09:15">8/20</span></div>
</li>
<li class="cl-search-result" title="Landscaping crew">
  <a class="cl-app-anchor text-only posting-title" href="https://denver.craigslist.org/jjj/d/landscaping-crew/2.html">
    <span class="label">Landscaping crew - seasonal work</span>
  </a>
</li>
<li class="cl-search-result" title="No link here"></li>
</ol></body></html>`

func TestParseSearchHTMLList(t *testing.T) {
	hits, err := ParseSearchHTML(strings.NewReader(listMarkup), "https://denver.craigslist.org/search/jjj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	first := hits[0]
	if first.Title != "Hiring CDL Drivers" {
		t.Errorf("title: got %q", first.Title)
	}
	if first.URL != "https://denver.craigslist.org/jjj/d/hiring-cdl-drivers/1.html" {
		t.Errorf("url: got %q", first.URL)
	}
	if first.PostedDate != "2026-08-20" {
		t.Errorf("posted date: got %q", first.PostedDate)
	}
	if first.City != "denver" || first.Category != "jjj" {
		t.Errorf("city/category: got %q/%q", first.City, first.Category)
	}
}

const legacyMarkup = `
<html><body><ul>
<li class="result-row">
  <time class="result-date" datetime="2026-08-19 14:02"></time>
  <a class="result-title" href="https://denver.craigslist.org/jjj/d/line-cooks/3.html">Line cooks needed immediately</a>
</li>
</ul></body></html>`

func TestParseSearchHTMLLegacyRows(t *testing.T) {
	hits, err := ParseSearchHTML(strings.NewReader(legacyMarkup), "https://denver.craigslist.org/search/jjj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Title != "Line cooks needed immediately" {
		t.Errorf("title: got %q", hits[0].Title)
	}
	if hits[0].PostedDate != "2026-08-19" {
		t.Errorf("posted date: got %q", hits[0].PostedDate)
	}
}

func TestParseSearchHTMLEmpty(t *testing.T) {
	hits, err := ParseSearchHTML(strings.NewReader("<html><body></body></html>"), "https://denver.craigslist.org/search/jjj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2026-08-20 09:15": "2026-08-20",
		"2026-08-20":       "2026-08-20",
		"8/20":             "",
		"":                 "",
	}
	for in, want := range cases {
		if got := normalizeDate(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestStripHTML(t *testing.T) {
	got := stripHTML("<p>Now &amp; hiring <b>crew</b></p>")
	if got != "Now & hiring crew" {
		t.Errorf("got %q", got)
	}
}
