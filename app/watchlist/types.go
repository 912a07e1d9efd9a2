package watchlist

// Bill is a watchlist entry enriched with current status when the
// Congress.gov lookup succeeds.
type Bill struct {
	BillID         string   `json:"bill_id"`
	Title          string   `json:"title"`
	Notes          string   `json:"notes,omitempty"`
	Category       string   `json:"category"`
	LastAction     string   `json:"last_action,omitempty"`
	LastActionDate string   `json:"last_action_date,omitempty"`
	Sponsors       []string `json:"sponsors,omitempty"`
	Committees     []string `json:"committees,omitempty"`
	URL            string   `json:"url,omitempty"`
}

// RegulatoryItem is a manually tracked comment deadline from the
// watchlist file.
type RegulatoryItem struct {
	Title           string `json:"title"`
	Docket          string `json:"docket,omitempty"`
	CommentsCloseOn string `json:"comments_close_on,omitempty"`
	EffectiveDate   string `json:"effective_date,omitempty"`
	Notes           string `json:"notes,omitempty"`
	URL             string `json:"url,omitempty"`
	DaysUntil       int    `json:"days_until"`
	HasDeadline     bool   `json:"-"`
}

// watchlistFile mirrors the YAML layout of the watchlist file.
type watchlistFile struct {
	HighPriority          []billEntry       `yaml:"high_priority"`
	FundingAppropriations []billEntry       `yaml:"funding_appropriations"`
	OtherNotable          []billEntry       `yaml:"other_notable"`
	RegulatoryComments    []regulatoryEntry `yaml:"regulatory_comments"`
}

type billEntry struct {
	BillID string `yaml:"bill_id"`
	Title  string `yaml:"title"`
	Notes  string `yaml:"notes"`
}

type regulatoryEntry struct {
	Title           string `yaml:"title"`
	Docket          string `yaml:"docket"`
	CommentsCloseOn string `yaml:"comments_close_on"`
	EffectiveDate   string `yaml:"effective_date"`
	Notes           string `yaml:"notes"`
	URL             string `yaml:"url"`
}
