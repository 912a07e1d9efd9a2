package openfema

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

// DefaultAPIBase is the OpenFEMA API, which requires no authentication.
const DefaultAPIBase = "https://www.fema.gov/api/open/v2"

// relevantIncidentTypes are the incident types worth reporting for
// flood management purposes.
var relevantIncidentTypes = map[string]bool{
	"Flood":           true,
	"Severe Storm":    true,
	"Hurricane":       true,
	"Coastal Storm":   true,
	"Severe Storm(s)": true,
	"Typhoon":         true,
	"Dam/Levee Break": true,
	"Tornado":         true,
	"Mud/Landslide":   true,
}

// Client is an OpenFEMA API client.
type Client struct {
	apiBase    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(userAgent string) *Client {
	return &Client{
		apiBase:    DefaultAPIBase,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBase is used by tests to point the client at a local
// server.
func NewClientWithBase(userAgent, apiBase string) *Client {
	c := NewClient(userAgent)
	c.apiBase = strings.TrimSuffix(apiBase, "/")
	return c
}

// RecentDisasters fetches disaster declarations from the last daysBack
// days, deduplicated by disaster/state/area key. Records without a
// disaster number are dropped. Fetch failures return an empty list:
// disaster data is supplementary and must not abort a run.
func (c *Client) RecentDisasters(ctx context.Context, daysBack, limit int) []Declaration {
	cutoff := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("declarationDate ge '%s'", cutoff))
	params.Set("$orderby", "declarationDate desc")
	params.Set("$top", fmt.Sprint(limit))

	slog.Info("Fetching FEMA disaster declarations", "days_back", daysBack)

	var resp summariesResponse
	if err := c.get(ctx, "DisasterDeclarationsSummaries", params, &resp); err != nil {
		slog.Error("Failed to fetch FEMA disasters", "error", err)
		return nil
	}

	var declarations []Declaration
	seen := make(map[string]bool)
	for _, record := range resp.Summaries {
		declaration, ok := buildDeclaration(record)
		if !ok {
			continue
		}
		if key := declaration.Key(); !seen[key] {
			seen[key] = true
			declarations = append(declarations, declaration)
		}
	}

	slog.Info("Unique disaster declarations found", "count", len(declarations))
	return declarations
}

// FloodRelatedDisasters fetches recent declarations filtered to the
// incident types relevant to flood management.
func (c *Client) FloodRelatedDisasters(ctx context.Context, daysBack, limit int) []Declaration {
	all := c.RecentDisasters(ctx, daysBack, limit)

	var floodRelated []Declaration
	for _, d := range all {
		if relevantIncidentTypes[d.IncidentType] {
			floodRelated = append(floodRelated, d)
		}
	}

	slog.Info("Flood-related disasters filtered", "count", len(floodRelated))
	return floodRelated
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestURL := c.apiBase + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openFEMA API %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

// buildDeclaration normalizes a raw record. Date fields arrive as full
// ISO timestamps and are truncated to the date part.
func buildDeclaration(record declarationData) (Declaration, bool) {
	if record.DisasterNumber == 0 {
		return Declaration{}, false
	}

	area := record.DesignatedArea
	if area == "" {
		area = "Statewide"
	}

	title := record.DeclarationTitle
	if title == "" {
		title = "Unknown"
	}
	incidentType := record.IncidentType
	if incidentType == "" {
		incidentType = "Unknown"
	}

	return Declaration{
		DisasterNumber:    record.DisasterNumber,
		DeclarationTitle:  title,
		State:             record.State,
		IncidentType:      incidentType,
		DeclarationDate:   datePart(record.DeclarationDate),
		DesignatedArea:    area,
		IncidentBeginDate: datePart(record.IncidentBeginDate),
		IncidentEndDate:   datePart(record.IncidentEndDate),
		URL:               fmt.Sprintf("https://www.fema.gov/disaster/%d", record.DisasterNumber),
	}, true
}

func datePart(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}
