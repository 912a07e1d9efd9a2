package digest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/nafsma/legis-tracker/app/committee"
	"github.com/nafsma/legis-tracker/app/congress"
	"github.com/nafsma/legis-tracker/app/fedreg"
	"github.com/nafsma/legis-tracker/app/openfema"
	"github.com/nafsma/legis-tracker/app/watchlist"
)

//go:embed daily_digest.md.tmpl
var digestTemplate string

// BillChange pairs a bill with the action it moved away from.
type BillChange struct {
	Bill           congress.BillInfo
	PreviousAction string
	PreviousDate   string
}

// WatchlistChange pairs a watchlist bill with its previous action.
type WatchlistChange struct {
	Bill           watchlist.Bill
	PreviousAction string
	PreviousDate   string
}

// Data is everything one daily digest renders.
type Data struct {
	Date              string
	NewBills          []congress.BillInfo
	BillChanges       []BillChange
	NewDocuments      []fedreg.Document
	CommentAlerts     []fedreg.Document
	NewCommitteeItems []committee.Item
	NewMeetings       []congress.Meeting
	NewDisasters      []openfema.Declaration
	WatchlistChanges  []WatchlistChange
	RegulatoryItems   []watchlist.RegulatoryItem
	TrackedTotal      int
}

// HasUpdates reports whether any section has content. The comment
// alerts and regulatory watchlist sections are reminders, not updates,
// so they do not count.
func (d Data) HasUpdates() bool {
	return len(d.NewBills) > 0 || len(d.BillChanges) > 0 ||
		len(d.NewDocuments) > 0 || len(d.NewCommitteeItems) > 0 ||
		len(d.NewMeetings) > 0 || len(d.NewDisasters) > 0 ||
		len(d.WatchlistChanges) > 0
}

// UpdateCount returns the total number of updates across all sections.
func (d Data) UpdateCount() int {
	return len(d.NewBills) + len(d.BillChanges) + len(d.NewDocuments) +
		len(d.NewCommitteeItems) + len(d.NewMeetings) +
		len(d.NewDisasters) + len(d.WatchlistChanges)
}

// BillsWithPriority filters new bills by priority level, for the
// critical/high/normal groupings in the template.
func (d Data) BillsWithPriority(priority string) []congress.BillInfo {
	var out []congress.BillInfo
	for _, b := range d.NewBills {
		if b.Priority == priority {
			out = append(out, b)
		}
	}
	return out
}

// Generator renders and saves daily digests.
type Generator struct {
	tmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	tmpl, err := template.New("daily_digest").Funcs(template.FuncMap{
		"daysUntil": func(doc fedreg.Document) int {
			days, _ := doc.DaysUntilCommentClose()
			return days
		},
		"join": strings.Join,
	}).Parse(digestTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse digest template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// Render produces the digest markdown.
func (g *Generator) Render(data Data) (string, error) {
	var buf strings.Builder
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}

// Save writes the digest under outputDir as digest-YYYY-MM-DD.md,
// creating the directory as needed, and returns the written path.
func (g *Generator) Save(content, outputDir, date string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("digest-%s.md", date))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write digest: %w", err)
	}
	return path, nil
}
