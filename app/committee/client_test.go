package committee

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nafsma/legis-tracker/app/config"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Committee News</title>
<item>
<title>Hearing on Stormwater Infrastructure Funding</title>
<link>https://example.gov/news/1</link>
<guid>https://example.gov/news/1</guid>
<pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
<description>The committee will hold a hearing on stormwater grants.</description>
</item>
<item>
<title>Markup of Agriculture Bill</title>
<link>https://example.gov/news/2</link>
<guid>https://example.gov/news/2</guid>
<pubDate>Tue, 25 Aug 2026 10:00:00 GMT</pubDate>
<description>Markup session scheduled.</description>
</item>
</channel>
</rss>`

func TestFetchFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "tracker-test" {
			t.Errorf("Expected custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := NewClient("tracker-test")
	feed := config.RSSFeed{Name: "House T&I", URL: server.URL}

	items, err := client.FetchFeed(context.Background(), feed, config.PriorityKeywords{High: []string{"stormwater"}})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.ItemID != "https://example.gov/news/1" {
		t.Errorf("Expected GUID as item ID, got %q", first.ItemID)
	}
	if first.PublishedDate != "2026-08-24" {
		t.Errorf("Expected normalized date, got %q", first.PublishedDate)
	}
	if first.SourceName != "House T&I" {
		t.Errorf("Expected source name, got %q", first.SourceName)
	}
	if first.Priority != "high" {
		t.Errorf("Expected high priority from keyword match, got %q", first.Priority)
	}
	if items[1].Priority != "normal" {
		t.Errorf("Expected normal priority, got %q", items[1].Priority)
	}
}

func TestFetchFeedKeywordFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := NewClient("ua")
	feed := config.RSSFeed{Name: "House T&I", URL: server.URL, Keywords: []string{"stormwater"}}

	items, err := client.FetchFeed(context.Background(), feed, config.PriorityKeywords{})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 matching item, got %d", len(items))
	}
	if items[0].Title != "Hearing on Stormwater Infrastructure Funding" {
		t.Errorf("Unexpected item %q", items[0].Title)
	}
}

func TestFetchFeedHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("ua")
	_, err := client.FetchFeed(context.Background(), config.RSSFeed{Name: "Gone", URL: server.URL}, config.PriorityKeywords{})
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
}

func TestNormalizeEntryIdentityFallbacks(t *testing.T) {
	published := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	withGUID := normalizeEntry(&gofeed.Item{GUID: "guid-1", Link: "https://x/1", Title: "A", PublishedParsed: &published}, "src", config.PriorityKeywords{})
	if withGUID.ItemID != "guid-1" {
		t.Errorf("Expected GUID preferred, got %q", withGUID.ItemID)
	}

	withLink := normalizeEntry(&gofeed.Item{Link: "https://x/1", Title: "A"}, "src", config.PriorityKeywords{})
	if withLink.ItemID != "https://x/1" {
		t.Errorf("Expected link fallback, got %q", withLink.ItemID)
	}

	bare := normalizeEntry(&gofeed.Item{Title: "A"}, "src", config.PriorityKeywords{})
	if len(bare.ItemID) != 64 {
		t.Errorf("Expected sha256 hash fallback, got %q", bare.ItemID)
	}
	if bare.ItemID != contentHash("A", "") {
		t.Error("Expected deterministic hash of title and link")
	}
}

func TestFetchAllSortsNewestFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	cfg := &config.Config{}
	cfg.Committees.RSSFeeds = []config.RSSFeed{
		{Name: "Working", URL: server.URL},
		{Name: "Broken", URL: failing.URL},
	}

	items := FetchAll(context.Background(), NewClient("ua"), cfg)

	if len(items) != 2 {
		t.Fatalf("Expected 2 items from the working feed, got %d", len(items))
	}
	if items[0].PublishedDate < items[1].PublishedDate {
		t.Errorf("Expected newest first, got %q then %q", items[0].PublishedDate, items[1].PublishedDate)
	}
}
