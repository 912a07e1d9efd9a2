package congress

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nafsma/legis-tracker/app/config"
)

// defaultTrackedCommittees maps Congress.gov committee system codes to
// display names. Codes are lowercase with a numeric suffix (00 = full
// committee). Overridable via the committees.tracked_committees config.
var defaultTrackedCommittees = map[string]string{
	// House committees
	"hspw00": "House Transportation & Infrastructure",
	"hspw02": "House T&I - Water Resources",
	"hspw13": "House T&I - Emergency Management",
	"hsap00": "House Appropriations",
	"hsap10": "House Appropriations - Energy & Water",
	// Senate committees
	"ssev00": "Senate Environment & Public Works",
	"ssev15": "Senate EPW - Fisheries, Wildlife, and Water",
	"ssap00": "Senate Appropriations",
	"ssap22": "Senate Appropriations - Energy & Water",
	"ssbk00": "Senate Banking, Housing, and Urban Affairs",
}

// GetMeetingList fetches the meeting list for a chamber. List items
// carry only the event ID; details require a follow-up fetch.
func (c *Client) GetMeetingList(ctx context.Context, congressNum int, chamber string, limit int) ([]meetingRef, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(limit))

	var resp meetingListResponse
	endpoint := fmt.Sprintf("committee-meeting/%d/%s", congressNum, chamber)
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return resp.CommitteeMeetings, nil
}

// GetMeetingDetails fetches full details for a single meeting. A failed
// fetch returns nil: individual meetings disappear from the API
// regularly and should not abort the sweep.
func (c *Client) GetMeetingDetails(ctx context.Context, congressNum int, chamber, eventID string) *meetingData {
	endpoint := fmt.Sprintf("committee-meeting/%d/%s/%s", congressNum, chamber, eventID)

	var resp meetingDetailResponse
	if err := c.get(ctx, endpoint, nil, &resp); err != nil {
		slog.Debug("Failed to fetch meeting details", "event", eventID, "error", err)
		return nil
	}
	return resp.CommitteeMeeting
}

// FetchTrackedMeetings sweeps both chambers for meetings held by
// tracked committees within the lookback window, deduplicated by event
// ID and sorted newest first. Per-chamber fetch failures are logged and
// the sweep continues.
func FetchTrackedMeetings(ctx context.Context, client *Client, cfg *config.Config) []Meeting {
	tracked := defaultTrackedCommittees
	if len(cfg.Committees.TrackedCommittees) > 0 {
		tracked = make(map[string]string, len(cfg.Committees.TrackedCommittees))
		for _, tc := range cfg.Committees.TrackedCommittees {
			tracked[strings.ToLower(tc.Code)] = tc.Name
		}
	}

	congressNum := cfg.Congress.CurrentCongress
	daysBack := cfg.Committees.MeetingsDaysBack
	cutoff := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	var meetings []Meeting
	seen := make(map[string]bool)

	for _, chamber := range []string{"house", "senate"} {
		refs, err := client.GetMeetingList(ctx, congressNum, chamber, 100)
		if err != nil {
			slog.Error("Failed to fetch committee meetings", "chamber", chamber, "error", err)
			continue
		}
		slog.Info("Fetching meeting details", "chamber", chamber, "count", len(refs))

		for _, ref := range refs {
			if ref.EventID == "" || seen[ref.EventID] {
				continue
			}
			seen[ref.EventID] = true

			data := client.GetMeetingDetails(ctx, congressNum, chamber, ref.EventID)
			if data == nil {
				continue
			}

			for _, comm := range data.Committees {
				code := strings.ToLower(comm.SystemCode)
				name, ok := tracked[code]
				if !ok {
					continue
				}
				if len(data.Date) >= 10 && data.Date[:10] >= cutoff {
					meetings = append(meetings, buildMeeting(data, code, name))
				}
				break
			}
		}
	}

	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].Date > meetings[j].Date
	})

	slog.Info("Tracked committee meetings found", "count", len(meetings))
	return meetings
}

// buildMeeting normalizes raw meeting details. Dates arrive in ISO form
// (2026-01-22T16:15:00Z) and are split into date and time parts.
func buildMeeting(data *meetingData, committeeCode, committeeName string) Meeting {
	title := data.Title
	if title == "" {
		title = "Committee Meeting"
	}

	meetingType := data.Type
	if meetingType == "" {
		meetingType = "Meeting"
	}

	date := data.Date
	meetingTime := ""
	if len(date) >= 10 {
		if len(date) >= 16 {
			meetingTime = date[11:16]
		}
		date = date[:10]
	}

	location := ""
	if data.Location != nil {
		location = strings.TrimSpace(data.Location.Building + " " + data.Location.Room)
	}

	congressNum := data.Congress
	if congressNum == 0 {
		congressNum = 119
	}
	chamber := strings.ToLower(data.Chamber)
	eventID := data.EventID

	var witnesses []string
	for _, w := range data.Witnesses {
		if w.Name != "" {
			witnesses = append(witnesses, w.Name)
		}
	}

	var relatedBills []string
	if data.RelatedItems != nil {
		for _, b := range data.RelatedItems.Bills {
			if b.Type != "" && b.Number != "" {
				relatedBills = append(relatedBills, strings.ToUpper(b.Type)+" "+b.Number)
			}
		}
	}

	return Meeting{
		EventID:       eventID,
		CommitteeCode: committeeCode,
		CommitteeName: committeeName,
		MeetingType:   meetingType,
		Title:         title,
		Date:          date,
		Time:          meetingTime,
		Location:      location,
		URL:           fmt.Sprintf("https://www.congress.gov/event/%dth-congress/%s-event/%s", congressNum, chamber, eventID),
		Witnesses:     witnesses,
		RelatedBills:  relatedBills,
	}
}
