package congress

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/nafsma/legis-tracker/app/config"
)

// billTypeSlugs maps bill type codes to congress.gov URL path segments.
var billTypeSlugs = map[string]string{
	"hr":      "house-bill",
	"s":       "senate-bill",
	"hjres":   "house-joint-resolution",
	"sjres":   "senate-joint-resolution",
	"hconres": "house-concurrent-resolution",
	"sconres": "senate-concurrent-resolution",
	"hres":    "house-resolution",
	"sres":    "senate-resolution",
}

// BillURL builds the congress.gov page URL for a bill.
func BillURL(congressNum int, billType string, billNumber int) string {
	slug, ok := billTypeSlugs[billType]
	if !ok {
		slug = billType
	}
	return fmt.Sprintf("https://www.congress.gov/bill/%dth-congress/%s/%d", congressNum, slug, billNumber)
}

// BuildBillInfo normalizes raw API bill data into a BillInfo, applying
// priority scoring against the configured keyword lists.
func BuildBillInfo(data BillData, priorities config.PriorityKeywords) BillInfo {
	congressNum := data.Congress
	if congressNum == 0 {
		congressNum = 119
	}
	billType := strings.ToLower(data.Type)

	billNumber, _ := strconv.Atoi(data.Number)

	title := data.Title
	if title == "" {
		title = "Untitled"
	}

	info := BillInfo{
		BillID:         fmt.Sprintf("%d-%s-%d", congressNum, billType, billNumber),
		BillType:       billType,
		BillNumber:     billNumber,
		Congress:       congressNum,
		Title:          title,
		IntroducedDate: data.IntroducedDate,
		URL:            BillURL(congressNum, billType, billNumber),
		Priority:       priorities.Classify(title),
	}

	if data.LatestAction != nil {
		info.LatestAction = data.LatestAction.Text
		info.LatestActionDate = data.LatestAction.ActionDate
	}

	if len(data.Sponsors) > 0 {
		first := data.Sponsors[0]
		if first.FullName != "" {
			info.Sponsor = first.FullName
		} else {
			info.Sponsor = first.Name
		}
		info.SponsorParty = first.Party
		info.SponsorState = first.State
	}

	if data.PolicyArea != nil {
		info.PolicyArea = data.PolicyArea.Name
	}

	info.Committees = data.Committees.Names()

	return info
}

// FilterByTitleKeywords keeps bills whose title contains any of the
// keywords, case-insensitively.
func FilterByTitleKeywords(bills []BillData, keywords []string) []BillData {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	var matching []BillData
	for _, bill := range bills {
		title := strings.ToLower(bill.Title)
		for _, kw := range lowered {
			if strings.Contains(title, kw) {
				matching = append(matching, bill)
				break
			}
		}
	}
	return matching
}

// FilterBySubjects keeps bills whose CRS-assigned policy area or
// legislative subjects match the configured relevance lists. This
// requires one subjects fetch per candidate bill.
func FilterBySubjects(ctx context.Context, client *Client, bills []BillData, policyAreas, subjects []string) []BillData {
	areasLower := make([]string, len(policyAreas))
	for i, pa := range policyAreas {
		areasLower[i] = strings.ToLower(pa)
	}
	subjectsLower := make([]string, len(subjects))
	for i, s := range subjects {
		subjectsLower[i] = strings.ToLower(s)
	}

	var matching []BillData
	for _, bill := range bills {
		congressNum := bill.Congress
		if congressNum == 0 {
			congressNum = 119
		}
		billNumber, _ := strconv.Atoi(bill.Number)

		data := client.GetBillSubjects(ctx, congressNum, strings.ToLower(bill.Type), billNumber)

		if matchesAny(strings.ToLower(data.PolicyArea.Name), areasLower) {
			matching = append(matching, bill)
			continue
		}

		for _, subj := range data.LegislativeSubjects {
			if matchesAny(strings.ToLower(subj.Name), subjectsLower) {
				matching = append(matching, bill)
				break
			}
		}
	}
	return matching
}

func matchesAny(name string, needles []string) bool {
	if name == "" {
		return false
	}
	for _, needle := range needles {
		if strings.Contains(name, needle) {
			return true
		}
	}
	return false
}

var priorityOrder = map[string]int{"critical": 0, "high": 1, "normal": 2}

// SortByPriority orders bills critical first, then high, then normal,
// preserving the incoming order within each priority.
func SortByPriority(bills []BillInfo) {
	sort.SliceStable(bills, func(i, j int) bool {
		oi, ok := priorityOrder[bills[i].Priority]
		if !ok {
			oi = 3
		}
		oj, ok := priorityOrder[bills[j].Priority]
		if !ok {
			oj = 3
		}
		return oi < oj
	})
}

// FindRelevantBills discovers relevant bills using subject-based
// filtering: fetch recent bills, first-pass filter by title keywords,
// second-pass filter by CRS subjects, then score and sort by priority.
func FindRelevantBills(ctx context.Context, client *Client, cfg *config.Config) ([]BillInfo, error) {
	congressCfg := cfg.Congress

	slog.Info("Fetching recent bills", "congress", congressCfg.CurrentCongress)
	allBills, err := client.GetRecentBills(ctx, congressCfg.CurrentCongress, 250)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent bills: %w", err)
	}
	slog.Info("Fetched recent bills", "count", len(allBills))

	candidates := allBills
	if len(congressCfg.TitleKeywords) > 0 {
		candidates = FilterByTitleKeywords(allBills, congressCfg.TitleKeywords)
		slog.Info("First-pass title filter", "matches", len(candidates))
	}

	filtered := candidates
	if len(congressCfg.RelevantPolicyAreas) > 0 || len(congressCfg.RelevantSubjects) > 0 {
		slog.Info("Fetching subjects for candidate bills", "candidates", len(candidates))
		filtered = FilterBySubjects(ctx, client, candidates,
			congressCfg.RelevantPolicyAreas, congressCfg.RelevantSubjects)
		slog.Info("Second-pass subject filter", "matches", len(filtered))
	}

	bills := make([]BillInfo, 0, len(filtered))
	for _, bill := range filtered {
		bills = append(bills, BuildBillInfo(bill, congressCfg.PriorityKeywords))
	}

	SortByPriority(bills)

	slog.Info("Relevant bills found", "count", len(bills))
	return bills, nil
}
