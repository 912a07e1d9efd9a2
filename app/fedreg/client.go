package fedreg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nafsma/legis-tracker/app/config"
)

// DefaultAPIBase is the Federal Register API, which requires no
// authentication.
const DefaultAPIBase = "https://www.federalregister.gov/api/v1"

// docTypeCodes maps human-readable document type names to API codes.
var docTypeCodes = map[string]string{
	"Rule":                  "RULE",
	"Proposed Rule":         "PRORULE",
	"Notice":                "NOTICE",
	"Presidential Document": "PRESDOCU",
}

// Client is a Federal Register API client.
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

// SearchOptions narrows a document search. Dates are YYYY-MM-DD.
type SearchOptions struct {
	Agencies           []string
	DocTypes           []string
	PublicationDateGTE string
	PublicationDateLTE string
	PerPage            int
	Page               int
}

// SearchDocuments searches Federal Register documents, newest first.
// Agency and type conditions are repeated array parameters.
func (c *Client) SearchDocuments(ctx context.Context, opts SearchOptions) ([]Document, error) {
	params := url.Values{}
	perPage := opts.PerPage
	if perPage == 0 {
		perPage = 50
	}
	page := opts.Page
	if page == 0 {
		page = 1
	}
	params.Set("per_page", fmt.Sprint(perPage))
	params.Set("page", fmt.Sprint(page))
	params.Set("order", "newest")

	for _, agency := range opts.Agencies {
		params.Add("conditions[agencies][]", agency)
	}
	for _, docType := range opts.DocTypes {
		code, ok := docTypeCodes[docType]
		if !ok {
			code = docType
		}
		params.Add("conditions[type][]", code)
	}
	if opts.PublicationDateGTE != "" {
		params.Set("conditions[publication_date][gte]", opts.PublicationDateGTE)
	}
	if opts.PublicationDateLTE != "" {
		params.Set("conditions[publication_date][lte]", opts.PublicationDateLTE)
	}

	var resp documentsResponse
	if err := c.get(ctx, "documents.json", params, &resp); err != nil {
		return nil, err
	}

	documents := make([]Document, 0, len(resp.Results))
	for _, raw := range resp.Results {
		documents = append(documents, buildDocument(raw))
	}
	return documents, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestURL := c.apiBase + "/" + strings.TrimPrefix(endpoint, "/") + "?" + params.Encode()
	slog.Debug("Requesting Federal Register API", "endpoint", endpoint)

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
		return fmt.Errorf("federal register API %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

func buildDocument(raw documentData) Document {
	var agencies []string
	for _, agency := range raw.Agencies {
		name := agency.Name
		if name == "" {
			name = agency.RawName
		}
		if name == "" {
			name = "Unknown Agency"
		}
		agencies = append(agencies, name)
	}

	title := raw.Title
	if title == "" {
		title = "Untitled"
	}
	docType := raw.Type
	if docType == "" {
		docType = "Unknown"
	}

	return Document{
		DocumentNumber:  raw.DocumentNumber,
		Title:           title,
		DocType:         docType,
		Abstract:        raw.Abstract,
		Agencies:        agencies,
		PublicationDate: raw.PublicationDate,
		HTMLURL:         raw.HTMLURL,
		PDFURL:          raw.PDFURL,
		CommentsCloseOn: raw.CommentsCloseOn,
		DocketIDs:       raw.DocketIDs,
	}
}

// FetchAgencyDocuments fetches recent documents for every configured
// agency, deduplicated by document number. Per-agency fetch failures
// are logged and skipped so one flaky agency does not lose the rest.
func FetchAgencyDocuments(ctx context.Context, client *Client, cfg *config.Config, daysBack int) []Document {
	frCfg := cfg.FederalRegister
	if len(frCfg.Agencies) == 0 {
		slog.Warn("No agencies configured for Federal Register monitoring")
		return nil
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -daysBack)

	var all []Document
	for _, agency := range frCfg.Agencies {
		name := agency.Name
		if name == "" {
			name = agency.Slug
		}
		slog.Info("Fetching Federal Register documents", "agency", name)

		documents, err := client.SearchDocuments(ctx, SearchOptions{
			Agencies:           []string{agency.Slug},
			DocTypes:           frCfg.DocumentTypes,
			PublicationDateGTE: startDate.Format("2006-01-02"),
			PublicationDateLTE: endDate.Format("2006-01-02"),
			PerPage:            50,
		})
		if err != nil {
			slog.Error("Failed to fetch Federal Register documents", "agency", name, "error", err)
			continue
		}
		slog.Info("Federal Register documents fetched", "agency", name, "count", len(documents))
		all = append(all, documents...)
	}

	seen := make(map[string]bool)
	unique := make([]Document, 0, len(all))
	for _, doc := range all {
		if !seen[doc.DocumentNumber] {
			seen[doc.DocumentNumber] = true
			unique = append(unique, doc)
		}
	}

	slog.Info("Total unique Federal Register documents", "count", len(unique))
	return unique
}

// ClosingCommentPeriods returns documents whose comment period closes
// within warningDays, most urgent first.
func ClosingCommentPeriods(documents []Document, warningDays int) []Document {
	var closing []Document
	for _, doc := range documents {
		if days, ok := doc.DaysUntilCommentClose(); ok && days >= 0 && days <= warningDays {
			closing = append(closing, doc)
		}
	}

	sort.SliceStable(closing, func(i, j int) bool {
		di, _ := closing[i].DaysUntilCommentClose()
		dj, _ := closing[j].DaysUntilCommentClose()
		return di < dj
	})

	return closing
}
