package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nafsma/legis-tracker/app/congress"
)

// StatusFetcher is the subset of the Congress.gov client the watchlist
// needs. Satisfied by *congress.Client.
type StatusFetcher interface {
	GetBillDetails(ctx context.Context, congressNum int, billType string, billNumber int) (congress.BillData, error)
}

var billIDPattern = regexp.MustCompile(`^(\d+)-([a-z]+)-(\d+)$`)

// ParseBillID splits a bill identifier such as "119-hr-1234" into its
// parts. The type segment is matched case-insensitively.
func ParseBillID(billID string) (congressNum int, billType string, billNumber int, err error) {
	m := billIDPattern.FindStringSubmatch(strings.ToLower(billID))
	if m == nil {
		return 0, "", 0, fmt.Errorf("invalid bill id %q", billID)
	}
	congressNum, _ = strconv.Atoi(m[1])
	billNumber, _ = strconv.Atoi(m[3])
	return congressNum, m[2], billNumber, nil
}

// load reads the watchlist YAML file. A missing file is treated as an
// empty watchlist.
func load(path string) (*watchlistFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No watchlist file found", "path", path)
			return &watchlistFile{}, nil
		}
		return nil, fmt.Errorf("failed to read watchlist file: %w", err)
	}

	var wf watchlistFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist file: %w", err)
	}
	return &wf, nil
}

// CheckBills resolves every watchlist bill to its current status via
// the Congress.gov API. Entries with an unparseable bill id are
// skipped with a warning; a failed API lookup keeps the static entry
// so the bill is never silently dropped from tracking.
func CheckBills(ctx context.Context, path string, fetcher StatusFetcher) ([]Bill, error) {
	wf, err := load(path)
	if err != nil {
		return nil, err
	}

	categories := []struct {
		name    string
		entries []billEntry
	}{
		{"high_priority", wf.HighPriority},
		{"funding", wf.FundingAppropriations},
		{"notable", wf.OtherNotable},
	}

	var bills []Bill
	for _, cat := range categories {
		for _, entry := range cat.entries {
			congressNum, billType, billNumber, err := ParseBillID(entry.BillID)
			if err != nil {
				slog.Warn("Skipping watchlist entry with invalid bill id", "bill_id", entry.BillID)
				continue
			}
			bills = append(bills, checkBill(ctx, entry, cat.name, congressNum, billType, billNumber, fetcher))
		}
	}

	slog.Info("Watchlist bills checked", "count", len(bills))
	return bills, nil
}

func checkBill(ctx context.Context, entry billEntry, category string, congressNum int, billType string, billNumber int, fetcher StatusFetcher) Bill {
	bill := Bill{
		BillID:   entry.BillID,
		Title:    entry.Title,
		Notes:    entry.Notes,
		Category: category,
		URL:      congress.BillURL(congressNum, billType, billNumber),
	}

	data, err := fetcher.GetBillDetails(ctx, congressNum, billType, billNumber)
	if err != nil {
		slog.Warn("Could not fetch watchlist bill status", "bill_id", entry.BillID, "error", err)
		return bill
	}

	if data.Title != "" {
		bill.Title = data.Title
	}
	if data.LatestAction != nil {
		bill.LastAction = data.LatestAction.Text
		bill.LastActionDate = data.LatestAction.ActionDate
	}
	for _, s := range data.Sponsors {
		if s.FullName != "" {
			bill.Sponsors = append(bill.Sponsors, s.FullName)
		} else if s.Name != "" {
			bill.Sponsors = append(bill.Sponsors, s.Name)
		}
	}
	bill.Committees = data.Committees.Names()
	return bill
}

// RegulatoryItems returns the manually tracked regulatory deadlines,
// sorted by days remaining with undated items last. The comment close
// date wins when both it and an effective date are present.
func RegulatoryItems(path string, now time.Time) ([]RegulatoryItem, error) {
	wf, err := load(path)
	if err != nil {
		return nil, err
	}

	items := make([]RegulatoryItem, 0, len(wf.RegulatoryComments))
	for _, entry := range wf.RegulatoryComments {
		item := RegulatoryItem{
			Title:           entry.Title,
			Docket:          entry.Docket,
			CommentsCloseOn: entry.CommentsCloseOn,
			EffectiveDate:   entry.EffectiveDate,
			Notes:           entry.Notes,
			URL:             entry.URL,
		}
		target := entry.CommentsCloseOn
		if target == "" {
			target = entry.EffectiveDate
		}
		if target != "" {
			targetDate, err := time.Parse("2006-01-02", target)
			if err != nil {
				slog.Warn("Unparseable deadline date in watchlist",
					"title", entry.Title, "date", target)
			} else {
				item.DaysUntil = int(targetDate.Sub(now).Hours() / 24)
				item.HasDeadline = true
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].HasDeadline != items[j].HasDeadline {
			return items[i].HasDeadline
		}
		return items[i].DaysUntil < items[j].DaysUntil
	})
	return items, nil
}
