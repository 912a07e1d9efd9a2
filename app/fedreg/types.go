package fedreg

import "time"

// Document is a normalized Federal Register document, keyed by its
// document number.
type Document struct {
	DocumentNumber  string   `json:"document_number"`
	Title           string   `json:"title"`
	DocType         string   `json:"doc_type"`
	Abstract        string   `json:"abstract"`
	Agencies        []string `json:"agencies"`
	PublicationDate string   `json:"publication_date"`
	HTMLURL         string   `json:"html_url"`
	PDFURL          string   `json:"pdf_url"`
	CommentsCloseOn string   `json:"comments_close_on"`
	DocketIDs       []string `json:"docket_ids"`
}

// DaysUntilCommentClose returns the number of days until the comment
// period closes. The second return is false when no close date is set
// or it cannot be parsed.
func (d Document) DaysUntilCommentClose() (int, bool) {
	return d.daysUntilCommentClose(time.Now())
}

func (d Document) daysUntilCommentClose(now time.Time) (int, bool) {
	if d.CommentsCloseOn == "" {
		return 0, false
	}
	closeDate, err := time.Parse("2006-01-02", d.CommentsCloseOn)
	if err != nil {
		return 0, false
	}
	return int(closeDate.Sub(now).Hours() / 24), true
}

// IsCommentPeriodClosingSoon reports whether the comment period closes
// within 7 days.
func (d Document) IsCommentPeriodClosingSoon() bool {
	days, ok := d.DaysUntilCommentClose()
	return ok && days >= 0 && days <= 7
}

// Raw Federal Register API payloads.

type documentsResponse struct {
	Count   int            `json:"count"`
	Results []documentData `json:"results"`
}

type documentData struct {
	DocumentNumber  string       `json:"document_number"`
	Title           string       `json:"title"`
	Type            string       `json:"type"`
	Abstract        string       `json:"abstract"`
	Agencies        []agencyData `json:"agencies"`
	PublicationDate string       `json:"publication_date"`
	HTMLURL         string       `json:"html_url"`
	PDFURL          string       `json:"pdf_url"`
	CommentsCloseOn string       `json:"comments_close_on"`
	DocketIDs       []string     `json:"docket_ids"`
}

type agencyData struct {
	Name    string `json:"name"`
	RawName string `json:"raw_name"`
}
