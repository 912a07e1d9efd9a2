package committee

import (
	"bytes"
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nafsma/legis-tracker/app/config"
)

// Client fetches and parses committee RSS feeds.
type Client struct {
	userAgent  string
	httpClient *http.Client
	parser     *gofeed.Parser
}

func NewClient(userAgent string) *Client {
	return &Client{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		parser:     gofeed.NewParser(),
	}
}

// FetchFeed fetches and parses one committee feed, applying the feed's
// keyword filter (when configured) and priority scoring.
func (c *Client) FetchFeed(ctx context.Context, feed config.RSSFeed, priorities config.PriorityKeywords) ([]Item, error) {
	slog.Info("Fetching committee RSS feed", "source", feed.Name)

	data, err := c.fetch(ctx, feed.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feed.Name, err)
	}

	parsed, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feed.Name, err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item := normalizeEntry(entry, feed.Name, priorities)
		if len(feed.Keywords) > 0 && !matchesKeywords(item, feed.Keywords) {
			continue
		}
		items = append(items, item)
	}

	slog.Info("Committee feed parsed", "source", feed.Name, "items", len(items))
	return items, nil
}

func (c *Client) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// normalizeEntry converts a gofeed entry into an Item. Identity prefers
// the entry GUID, then the link, then a hash of title+link for feeds
// that provide neither.
func normalizeEntry(entry *gofeed.Item, sourceName string, priorities config.PriorityKeywords) Item {
	itemID := cmp.Or(entry.GUID, entry.Link)
	if itemID == "" {
		itemID = contentHash(entry.Title, entry.Link)
	}

	publishedDate := entry.Published
	if entry.PublishedParsed != nil {
		publishedDate = entry.PublishedParsed.Format("2006-01-02")
	}

	return Item{
		ItemID:        itemID,
		Title:         entry.Title,
		Link:          entry.Link,
		PublishedDate: publishedDate,
		SourceName:    sourceName,
		Description:   entry.Description,
		Priority:      priorities.Classify(entry.Title + " " + entry.Description),
	}
}

func contentHash(title, link string) string {
	hash := sha256.Sum256([]byte(title + "|" + link))
	return hex.EncodeToString(hash[:])
}

func matchesKeywords(item Item, keywords []string) bool {
	text := strings.ToLower(item.Title + " " + item.Description)
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// FetchAll fetches every configured committee feed, merges the results
// and sorts them newest first. Per-feed failures are logged and
// skipped.
func FetchAll(ctx context.Context, client *Client, cfg *config.Config) []Item {
	feeds := cfg.Committees.RSSFeeds
	if len(feeds) == 0 {
		slog.Warn("No committee RSS feeds configured")
		return nil
	}

	var all []Item
	for _, feed := range feeds {
		items, err := client.FetchFeed(ctx, feed, cfg.Congress.PriorityKeywords)
		if err != nil {
			slog.Error("Failed to fetch committee feed", "source", feed.Name, "error", err)
			continue
		}
		all = append(all, items...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedDate > all[j].PublishedDate
	})

	slog.Info("Total committee items fetched", "count", len(all))
	return all
}
