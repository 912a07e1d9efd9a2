package state

// Fingerprint is the pair of fields used to decide whether a tracked
// entity's status changed since it was last seen. Text is typically the
// latest-action text, Date the matching action date. Equality requires
// both halves to match.
type Fingerprint struct {
	Text string
	Date string
}

type UpdateKind string

const (
	UpdateNew          UpdateKind = "new"
	UpdateStatusChange UpdateKind = "status_change"
)

// Update describes one detected change. Updates are ephemeral: they are
// produced once per run and consumed by the digest, never persisted.
// Previous carries the stored fingerprint at the time of a status change
// and is zero for new entities.
type Update[E any] struct {
	Entity   E
	Kind     UpdateKind
	Previous Fingerprint
}

// TrackedBill is the persisted summary of a bill.
type TrackedBill struct {
	BillID         string `json:"bill_id"`
	Title          string `json:"title"`
	LastAction     string `json:"last_action"`
	LastActionDate string `json:"last_action_date"`
	FirstSeen      string `json:"first_seen"`
	LastUpdated    string `json:"last_updated"`
}

// TrackedDocument is the persisted summary of a Federal Register
// document. Documents are effectively immutable once published, so only
// first_seen is recorded.
type TrackedDocument struct {
	DocumentNumber  string `json:"document_number"`
	Title           string `json:"title"`
	DocType         string `json:"doc_type"`
	PublicationDate string `json:"publication_date"`
	FirstSeen       string `json:"first_seen"`
}

// TrackedCommitteeItem is the persisted summary of a committee RSS item.
type TrackedCommitteeItem struct {
	ItemID        string `json:"item_id"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	PublishedDate string `json:"published_date"`
	SourceName    string `json:"source_name"`
	FirstSeen     string `json:"first_seen"`
	LastUpdated   string `json:"last_updated"`
}

// TrackedMeeting is the persisted summary of a committee meeting.
type TrackedMeeting struct {
	EventID       string `json:"event_id"`
	Title         string `json:"title"`
	MeetingType   string `json:"meeting_type"`
	CommitteeName string `json:"committee_name"`
	Date          string `json:"date"`
	FirstSeen     string `json:"first_seen"`
	LastUpdated   string `json:"last_updated"`
}

// TrackedDisaster is the persisted summary of a FEMA disaster
// declaration.
type TrackedDisaster struct {
	DisasterNumber   int    `json:"disaster_number"`
	DeclarationTitle string `json:"declaration_title"`
	State            string `json:"state"`
	IncidentType     string `json:"incident_type"`
	DeclarationDate  string `json:"declaration_date"`
	DesignatedArea   string `json:"designated_area"`
	IncidentEndDate  string `json:"incident_end_date"`
	FirstSeen        string `json:"first_seen"`
	LastUpdated      string `json:"last_updated"`
}

// TrackedWatchlistBill is the persisted summary of a watchlist bill.
type TrackedWatchlistBill struct {
	BillID           string `json:"bill_id"`
	Title            string `json:"title"`
	LatestAction     string `json:"latest_action"`
	LatestActionDate string `json:"latest_action_date"`
	FirstSeen        string `json:"first_seen"`
	LastUpdated      string `json:"last_updated"`
}

// Snapshot is the complete persisted state: one mapping per entity type
// plus the timestamp of the last completed run. It is the sole persisted
// state of the tracker and is replaced wholesale on every save.
type Snapshot struct {
	LastRun                  *string                         `json:"last_run"`
	Bills                    map[string]TrackedBill          `json:"bills"`
	FederalRegisterDocuments map[string]TrackedDocument      `json:"federal_register_documents"`
	CommitteeItems           map[string]TrackedCommitteeItem `json:"committee_items"`
	CommitteeMeetings        map[string]TrackedMeeting       `json:"committee_meetings"`
	DisasterDeclarations     map[string]TrackedDisaster      `json:"disaster_declarations"`
	WatchlistBills           map[string]TrackedWatchlistBill `json:"watchlist_bills"`
}

// NewSnapshot returns an empty snapshot with all mappings initialized.
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.normalize()
	return s
}

// normalize initializes mappings left nil by deserialization, so
// snapshots written by older versions load with the missing entity
// types defaulting to empty.
func (s *Snapshot) normalize() {
	if s.Bills == nil {
		s.Bills = make(map[string]TrackedBill)
	}
	if s.FederalRegisterDocuments == nil {
		s.FederalRegisterDocuments = make(map[string]TrackedDocument)
	}
	if s.CommitteeItems == nil {
		s.CommitteeItems = make(map[string]TrackedCommitteeItem)
	}
	if s.CommitteeMeetings == nil {
		s.CommitteeMeetings = make(map[string]TrackedMeeting)
	}
	if s.DisasterDeclarations == nil {
		s.DisasterDeclarations = make(map[string]TrackedDisaster)
	}
	if s.WatchlistBills == nil {
		s.WatchlistBills = make(map[string]TrackedWatchlistBill)
	}
}

// TrackedCount returns the total number of tracked entities across all
// entity types.
func (s *Snapshot) TrackedCount() int {
	return len(s.Bills) + len(s.FederalRegisterDocuments) +
		len(s.CommitteeItems) + len(s.CommitteeMeetings) +
		len(s.DisasterDeclarations) + len(s.WatchlistBills)
}
