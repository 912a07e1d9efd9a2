package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nafsma/legis-tracker/app/congress"
)

func TestParseBillID(t *testing.T) {
	congressNum, billType, billNumber, err := ParseBillID("119-hr-2093")
	if err != nil {
		t.Fatal(err)
	}
	if congressNum != 119 || billType != "hr" || billNumber != 2093 {
		t.Errorf("Expected 119/hr/2093, got %d/%s/%d", congressNum, billType, billNumber)
	}

	// Upper-case type segments are accepted and normalized.
	congressNum, billType, billNumber, err = ParseBillID("119-HR-2093")
	if err != nil {
		t.Fatal(err)
	}
	if congressNum != 119 || billType != "hr" || billNumber != 2093 {
		t.Errorf("Expected 119/hr/2093, got %d/%s/%d", congressNum, billType, billNumber)
	}

	for _, invalid := range []string{"hr-2093", "119-hr", "nonsense", ""} {
		if _, _, _, err := ParseBillID(invalid); err == nil {
			t.Errorf("Expected error for %q", invalid)
		}
	}
}

type stubFetcher struct {
	bills map[string]congress.BillData
	err   error
}

func (s *stubFetcher) GetBillDetails(ctx context.Context, congressNum int, billType string, billNumber int) (congress.BillData, error) {
	if s.err != nil {
		return congress.BillData{}, s.err
	}
	key := congress.BillURL(congressNum, billType, billNumber)
	return s.bills[key], nil
}

const sampleWatchlist = `
high_priority:
  - bill_id: "119-hr-2093"
    title: "NFIP Reauthorization"
    notes: "Track closely"
funding_appropriations:
  - bill_id: "119-s-500"
    title: "Energy and Water Appropriations"
other_notable:
  - bill_id: "not-a-bill-id"
    title: "Malformed entry"
regulatory_comments:
  - title: "Proposed WOTUS Rule"
    docket: "EPA-HQ-OW-2026-0001"
    comments_close_on: "2026-09-10"
  - title: "No deadline item"
  - title: "Urgent rule"
    comments_close_on: "2026-09-02"
  - title: "Final levee standard"
    effective_date: "2026-09-05"
`

func writeWatchlist(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	if err := os.WriteFile(path, []byte(sampleWatchlist), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckBills(t *testing.T) {
	fetcher := &stubFetcher{bills: map[string]congress.BillData{
		congress.BillURL(119, "hr", 2093): {
			Congress:     119,
			Type:         "HR",
			Number:       "2093",
			Title:        "National Flood Insurance Program Reauthorization Act of 2026",
			LatestAction: &congress.ActionData{Text: "Passed House", ActionDate: "2026-08-20"},
			Sponsors: []congress.Sponsor{
				{FullName: "Rep. Doe, Jane [D-CA-12]"},
				{Name: "Rep. Roe, Richard"},
			},
		},
	}}

	bills, err := CheckBills(context.Background(), writeWatchlist(t), fetcher)
	if err != nil {
		t.Fatal(err)
	}

	// The malformed other_notable entry is skipped entirely.
	if len(bills) != 2 {
		t.Fatalf("Expected 2 bills, got %d", len(bills))
	}
	for _, bill := range bills {
		if bill.BillID == "not-a-bill-id" {
			t.Errorf("Expected malformed entry to be skipped, got %+v", bill)
		}
	}

	first := bills[0]
	if first.Category != "high_priority" {
		t.Errorf("Expected high_priority category, got %q", first.Category)
	}
	if first.Title != "National Flood Insurance Program Reauthorization Act of 2026" {
		t.Errorf("Expected official title to replace static one, got %q", first.Title)
	}
	if first.LastAction != "Passed House" || first.LastActionDate != "2026-08-20" {
		t.Errorf("Expected live status, got %+v", first)
	}
	if first.Notes != "Track closely" {
		t.Errorf("Expected notes preserved, got %q", first.Notes)
	}
	if len(first.Sponsors) != 2 ||
		first.Sponsors[0] != "Rep. Doe, Jane [D-CA-12]" ||
		first.Sponsors[1] != "Rep. Roe, Richard" {
		t.Errorf("Expected sponsor names with fullName preferred, got %v", first.Sponsors)
	}

	if bills[1].Category != "funding" {
		t.Errorf("Expected funding category, got %q", bills[1].Category)
	}
	// No details for this bill: static entry kept, no action recorded.
	if bills[1].Title != "Energy and Water Appropriations" || bills[1].LastAction != "" {
		t.Errorf("Expected static entry for unfetched bill, got %+v", bills[1])
	}
}

func TestCheckBillsCommittees(t *testing.T) {
	// Committees arrive as a list on some detail payloads and as a
	// count summary object on others. Only the list form yields names.
	detail := []byte(`{"bill": {
		"congress": 119,
		"type": "HR",
		"number": "2093",
		"title": "NFIP Reauthorization Act",
		"committees": [{"name": "House Financial Services Committee"}]
	}}`)
	var resp struct {
		Bill congress.BillData `json:"bill"`
	}
	if err := json.Unmarshal(detail, &resp); err != nil {
		t.Fatal(err)
	}

	fetcher := &stubFetcher{bills: map[string]congress.BillData{
		congress.BillURL(119, "hr", 2093): resp.Bill,
	}}

	bills, err := CheckBills(context.Background(), writeWatchlist(t), fetcher)
	if err != nil {
		t.Fatal(err)
	}
	if len(bills) != 2 {
		t.Fatalf("Expected 2 bills, got %d", len(bills))
	}
	if len(bills[0].Committees) != 1 || bills[0].Committees[0] != "House Financial Services Committee" {
		t.Errorf("Expected committee names from detail payload, got %v", bills[0].Committees)
	}

	summary := []byte(`{"bill": {"congress": 119, "type": "S", "number": "500",
		"committees": {"count": 2, "url": "https://api.congress.gov/..."}}}`)
	if err := json.Unmarshal(summary, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Bill.Committees.Names()) != 0 {
		t.Errorf("Expected no committee names from summary object, got %v", resp.Bill.Committees.Names())
	}
}

func TestCheckBillsFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("api down")}

	bills, err := CheckBills(context.Background(), writeWatchlist(t), fetcher)
	if err != nil {
		t.Fatal(err)
	}

	if len(bills) != 2 {
		t.Fatalf("Expected all parseable static entries, got %d", len(bills))
	}
	if bills[0].Title != "NFIP Reauthorization" {
		t.Errorf("Expected static title kept on fetch failure, got %q", bills[0].Title)
	}
	if bills[0].URL == "" {
		t.Error("Expected URL built from parsed bill id even on fetch failure")
	}
}

func TestCheckBillsMissingFile(t *testing.T) {
	bills, err := CheckBills(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), &stubFetcher{})
	if err != nil {
		t.Fatal(err)
	}
	if len(bills) != 0 {
		t.Errorf("Expected empty watchlist for missing file, got %d bills", len(bills))
	}
}

func TestRegulatoryItems(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	items, err := RegulatoryItems(writeWatchlist(t), now)
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(items))
	}
	if items[0].Title != "Urgent rule" {
		t.Errorf("Expected closest deadline first, got %q", items[0].Title)
	}
	// An item with only an effective date still gets a deadline and
	// sorts among the dated items.
	if items[1].Title != "Final levee standard" || !items[1].HasDeadline {
		t.Errorf("Expected effective date fallback, got %+v", items[1])
	}
	if items[1].EffectiveDate != "2026-09-05" || items[1].DaysUntil != 5 {
		t.Errorf("Expected 5 days until effective date, got %+v", items[1])
	}
	if items[2].Title != "Proposed WOTUS Rule" {
		t.Errorf("Expected later deadline third, got %q", items[2].Title)
	}
	if items[3].Title != "No deadline item" || items[3].HasDeadline {
		t.Errorf("Expected undated item last, got %+v", items[3])
	}
	if items[0].DaysUntil != 2 {
		t.Errorf("Expected 2 days until close, got %d", items[0].DaysUntil)
	}
}
