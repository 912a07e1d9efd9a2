package config

import "strings"

// Config is the complete tracker configuration, loaded from a single
// YAML file.
type Config struct {
	Congress        CongressConfig        `yaml:"congress"`
	FederalRegister FederalRegisterConfig `yaml:"federal_register"`
	Committees      CommitteesConfig      `yaml:"committees"`
	Disasters       DisastersConfig       `yaml:"disasters"`
	Email           EmailConfig           `yaml:"email"`
}

// CongressConfig controls bill discovery and relevance filtering.
type CongressConfig struct {
	CurrentCongress     int              `yaml:"current_congress"`
	TitleKeywords       []string         `yaml:"title_keywords"`
	RelevantPolicyAreas []string         `yaml:"relevant_policy_areas"`
	RelevantSubjects    []string         `yaml:"relevant_subjects"`
	PriorityKeywords    PriorityKeywords `yaml:"priority_keywords"`
}

// PriorityKeywords holds the keyword lists used to score items as
// critical, high, or normal priority.
type PriorityKeywords struct {
	Critical []string `yaml:"critical"`
	High     []string `yaml:"high"`
}

// Classify scores a piece of text against the keyword lists. Critical
// keywords win over high; anything else is normal. Matching is
// case-insensitive substring matching.
func (p PriorityKeywords) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range p.Critical {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return "critical"
		}
	}
	for _, kw := range p.High {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return "high"
		}
	}
	return "normal"
}

// FederalRegisterConfig controls Federal Register monitoring.
type FederalRegisterConfig struct {
	Agencies           []Agency `yaml:"agencies"`
	DocumentTypes      []string `yaml:"document_types"`
	CommentWarningDays int      `yaml:"comment_warning_days"`
}

// Agency identifies a Federal Register agency by its API slug.
type Agency struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// CommitteesConfig lists tracked committees and their RSS feeds.
type CommitteesConfig struct {
	RSSFeeds          []RSSFeed          `yaml:"rss_feeds"`
	TrackedCommittees []TrackedCommittee `yaml:"tracked_committees"`
	MeetingsDaysBack  int                `yaml:"meetings_days_back"`
}

// RSSFeed is one committee RSS feed to poll, with optional keyword
// filtering.
type RSSFeed struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Keywords []string `yaml:"keywords"`
}

// TrackedCommittee maps a Congress.gov committee system code to a
// display name.
type TrackedCommittee struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// DisastersConfig controls OpenFEMA disaster monitoring.
type DisastersConfig struct {
	DaysBack int `yaml:"days_back"`
}

// EmailConfig controls digest delivery.
type EmailConfig struct {
	FromAddress   string   `yaml:"from_address"`
	FromName      string   `yaml:"from_name"`
	Recipients    []string `yaml:"recipients"`
	SubjectPrefix string   `yaml:"subject_prefix"`
}
