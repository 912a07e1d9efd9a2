package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultAPIBase = "https://api.congress.gov/v3"

// Retry configuration for intermittent API failures. Congress.gov
// returns 503 during maintenance windows.
const maxRetries = 3

var retryDelay = 2 * time.Second

// Client is a Congress.gov API client covering the bill and
// committee-meeting endpoints.
type Client struct {
	apiKey     string
	apiBase    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(apiKey, userAgent string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiBase:    DefaultAPIBase,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBase is used by tests to point the client at a local
// server.
func NewClientWithBase(apiKey, userAgent, apiBase string) *Client {
	c := NewClient(apiKey, userAgent)
	c.apiBase = strings.TrimSuffix(apiBase, "/")
	return c
}

// get performs an authenticated GET against the API and decodes the
// JSON response into out, retrying on 503 with a fixed delay.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.getWithRetries(ctx, endpoint, params, out, maxRetries)
}

func (c *Client) getWithRetries(ctx context.Context, endpoint string, params url.Values, out any, retries int) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("format", "json")
	params.Set("api_key", c.apiKey)

	requestURL := c.apiBase + "/" + strings.TrimPrefix(endpoint, "/") + "?" + params.Encode()

	for attempt := 0; ; attempt++ {
		slog.Debug("Requesting Congress.gov API", "endpoint", endpoint, "attempt", attempt+1)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request to %s failed: %w", endpoint, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
		}

		if resp.StatusCode == http.StatusServiceUnavailable && attempt < retries {
			slog.Warn("Congress.gov API returned 503, retrying",
				"endpoint", endpoint, "delay", retryDelay,
				"attempt", attempt+1, "max", retries+1)
			select {
			case <-time.After(retryDelay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("congress.gov API %s: unexpected status %d", endpoint, resp.StatusCode)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
		return nil
	}
}

// GetRecentBills fetches recent bills from a congress, sorted by update
// date. This is the reliable listing endpoint used for relevance
// filtering.
func (c *Client) GetRecentBills(ctx context.Context, congressNum, limit int) ([]BillData, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(limit))
	params.Set("sort", "updateDate+desc")

	var resp billListResponse
	if err := c.get(ctx, fmt.Sprintf("bill/%d", congressNum), params, &resp); err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// GetBillDetails fetches full details for a specific bill.
func (c *Client) GetBillDetails(ctx context.Context, congressNum int, billType string, billNumber int) (BillData, error) {
	endpoint := fmt.Sprintf("bill/%d/%s/%d", congressNum, strings.ToLower(billType), billNumber)

	var resp billDetailResponse
	if err := c.get(ctx, endpoint, nil, &resp); err != nil {
		return BillData{}, err
	}
	return resp.Bill, nil
}

// GetBillSubjects fetches the CRS-assigned policy area and legislative
// subjects for a bill. Failures are downgraded to an empty result: a
// missing subjects record should not abort relevance filtering.
func (c *Client) GetBillSubjects(ctx context.Context, congressNum int, billType string, billNumber int) SubjectsData {
	endpoint := fmt.Sprintf("bill/%d/%s/%d/subjects", congressNum, strings.ToLower(billType), billNumber)

	var resp subjectsResponse
	if err := c.get(ctx, endpoint, nil, &resp); err != nil {
		slog.Warn("Could not fetch bill subjects", "bill", fmt.Sprintf("%s%d", billType, billNumber), "error", err)
		return SubjectsData{}
	}
	return resp.Subjects
}

// SearchBills searches for bills matching a query. The API text search
// is unreliable; when it returns 503 or nothing, recent bills are
// fetched and filtered locally by title.
func (c *Client) SearchBills(ctx context.Context, query string, congressNum, limit int) ([]BillData, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", fmt.Sprint(limit*2))
	params.Set("sort", "updateDate+desc")

	var resp billListResponse
	err := c.getWithRetries(ctx, "bill", params, &resp, 1)
	if err != nil {
		slog.Warn("Congress.gov text search unavailable, using local filtering", "error", err)
		return c.searchBillsLocal(ctx, query, congressNum, limit)
	}

	bills := resp.Bills
	if congressNum > 0 {
		filtered := make([]BillData, 0, len(bills))
		for _, b := range bills {
			if b.Congress == congressNum {
				filtered = append(filtered, b)
			}
			if len(filtered) >= limit {
				break
			}
		}
		bills = filtered
	}

	if len(bills) > 0 {
		return bills, nil
	}
	return c.searchBillsLocal(ctx, query, congressNum, limit)
}

// searchBillsLocal fetches recent bills and filters by title locally.
// Phrase match first, then all-keywords match, then single keyword.
func (c *Client) searchBillsLocal(ctx context.Context, query string, congressNum, limit int) ([]BillData, error) {
	bills, err := c.GetRecentBills(ctx, congressNum, 250)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	var keywords []string
	for _, kw := range strings.Fields(queryLower) {
		if len(kw) > 2 {
			keywords = append(keywords, kw)
		}
	}

	var matching []BillData
	for _, bill := range bills {
		title := strings.ToLower(bill.Title)

		switch {
		case strings.Contains(title, queryLower):
			matching = append(matching, bill)
		case len(keywords) >= 2 && containsAll(title, keywords):
			matching = append(matching, bill)
		case len(keywords) == 1 && strings.Contains(title, keywords[0]):
			matching = append(matching, bill)
		}

		if len(matching) >= limit {
			break
		}
	}

	slog.Info("Local search completed", "query", query, "matches", len(matching))
	return matching, nil
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
