package congress

import "encoding/json"

// BillInfo is a normalized bill record. BillID is the stable identity
// key in the form "{congress}-{type}-{number}".
type BillInfo struct {
	BillID           string   `json:"bill_id"`
	BillType         string   `json:"bill_type"`
	BillNumber       int      `json:"bill_number"`
	Congress         int      `json:"congress"`
	Title            string   `json:"title"`
	IntroducedDate   string   `json:"introduced_date"`
	LatestAction     string   `json:"latest_action"`
	LatestActionDate string   `json:"latest_action_date"`
	Sponsor          string   `json:"sponsor"`
	SponsorParty     string   `json:"sponsor_party"`
	SponsorState     string   `json:"sponsor_state"`
	Committees       []string `json:"committees"`
	PolicyArea       string   `json:"policy_area"`
	URL              string   `json:"url"`
	Priority         string   `json:"priority"`
}

// Meeting is a normalized committee meeting record keyed by its
// Congress.gov event ID.
type Meeting struct {
	EventID       string   `json:"event_id"`
	CommitteeCode string   `json:"committee_code"`
	CommitteeName string   `json:"committee_name"`
	MeetingType   string   `json:"meeting_type"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Location      string   `json:"location"`
	URL           string   `json:"url"`
	Witnesses     []string `json:"witnesses"`
	RelatedBills  []string `json:"related_bills"`
}

// Raw Congress.gov API payloads. Bill and event numbers arrive as JSON
// strings on the list endpoints.

type BillData struct {
	Congress       int            `json:"congress"`
	Type           string         `json:"type"`
	Number         string         `json:"number"`
	Title          string         `json:"title"`
	IntroducedDate string         `json:"introducedDate"`
	UpdateDate     string         `json:"updateDate"`
	LatestAction   *ActionData    `json:"latestAction"`
	Sponsors       []Sponsor      `json:"sponsors"`
	PolicyArea     *NamedItem     `json:"policyArea"`
	Committees     billCommittees `json:"committees"`
}

// billCommittees tolerates the two shapes the API uses for the bill
// detail "committees" field: a list of committees, or a count-and-URL
// summary object. Only the list form carries names.
type billCommittees []NamedItem

func (c *billCommittees) UnmarshalJSON(data []byte) error {
	var list []NamedItem
	if err := json.Unmarshal(data, &list); err != nil {
		*c = nil
		return nil
	}
	*c = list
	return nil
}

// Names returns the non-empty committee names.
func (c billCommittees) Names() []string {
	var names []string
	for _, item := range c {
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}
	return names
}

type ActionData struct {
	Text       string `json:"text"`
	ActionDate string `json:"actionDate"`
}

type Sponsor struct {
	FullName string `json:"fullName"`
	Name     string `json:"name"`
	Party    string `json:"party"`
	State    string `json:"state"`
}

type NamedItem struct {
	Name string `json:"name"`
}

type SubjectsData struct {
	PolicyArea          NamedItem   `json:"policyArea"`
	LegislativeSubjects []NamedItem `json:"legislativeSubjects"`
}

type billListResponse struct {
	Bills []BillData `json:"bills"`
}

type billDetailResponse struct {
	Bill BillData `json:"bill"`
}

type subjectsResponse struct {
	Subjects SubjectsData `json:"subjects"`
}

type meetingListResponse struct {
	CommitteeMeetings []meetingRef `json:"committeeMeetings"`
}

type meetingRef struct {
	EventID string `json:"eventId"`
	URL     string `json:"url"`
}

type meetingDetailResponse struct {
	CommitteeMeeting *meetingData `json:"committeeMeeting"`
}

type meetingData struct {
	EventID      string             `json:"eventId"`
	Congress     int                `json:"congress"`
	Chamber      string             `json:"chamber"`
	Type         string             `json:"type"`
	Title        string             `json:"title"`
	Date         string             `json:"date"`
	Committees   []meetingCommittee `json:"committees"`
	Location     *meetingLocation   `json:"location"`
	Witnesses    []NamedItem        `json:"witnesses"`
	RelatedItems *relatedItems      `json:"relatedItems"`
}

type meetingCommittee struct {
	SystemCode string `json:"systemCode"`
	Name       string `json:"name"`
}

type meetingLocation struct {
	Building string `json:"building"`
	Room     string `json:"room"`
}

type relatedItems struct {
	Bills []relatedBill `json:"bills"`
}

type relatedBill struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}
