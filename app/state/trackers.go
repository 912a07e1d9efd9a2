package state

import (
	"github.com/nafsma/legis-tracker/app/committee"
	"github.com/nafsma/legis-tracker/app/congress"
	"github.com/nafsma/legis-tracker/app/fedreg"
	"github.com/nafsma/legis-tracker/app/openfema"
	"github.com/nafsma/legis-tracker/app/watchlist"
)

// The concrete trackers bind each source's entity type to its persisted
// record layout. Fingerprint choices:
//
//   - bills and watchlist bills change when their latest action moves;
//   - Federal Register documents and committee items are immutable once
//     published, fingerprinted on title so a correction still registers;
//   - meetings change when rescheduled or retitled;
//   - disaster declarations change when the incident end date is set.

// BillTracker tracks relevant bills by latest action.
var BillTracker = Tracker[congress.BillInfo, TrackedBill]{
	Name: "bill",
	Key:  func(b congress.BillInfo) string { return b.BillID },
	Fingerprint: func(b congress.BillInfo) Fingerprint {
		return Fingerprint{Text: b.LatestAction, Date: b.LatestActionDate}
	},
	Record: func(b congress.BillInfo, now string) TrackedBill {
		return TrackedBill{
			BillID:         b.BillID,
			Title:          b.Title,
			LastAction:     b.LatestAction,
			LastActionDate: b.LatestActionDate,
			FirstSeen:      now,
			LastUpdated:    now,
		}
	},
	Refresh: func(r TrackedBill, b congress.BillInfo, now string) TrackedBill {
		r.Title = b.Title
		r.LastAction = b.LatestAction
		r.LastActionDate = b.LatestActionDate
		r.LastUpdated = now
		return r
	},
	StoredFingerprint: func(r TrackedBill) Fingerprint {
		return Fingerprint{Text: r.LastAction, Date: r.LastActionDate}
	},
}

// DocumentTracker tracks Federal Register documents. Published documents
// never change in place, so Refresh only covers the rare correction.
var DocumentTracker = Tracker[fedreg.Document, TrackedDocument]{
	Name: "federal_register_document",
	Key:  func(d fedreg.Document) string { return d.DocumentNumber },
	Fingerprint: func(d fedreg.Document) Fingerprint {
		return Fingerprint{Text: d.Title, Date: d.PublicationDate}
	},
	Record: func(d fedreg.Document, now string) TrackedDocument {
		return TrackedDocument{
			DocumentNumber:  d.DocumentNumber,
			Title:           d.Title,
			DocType:         d.DocType,
			PublicationDate: d.PublicationDate,
			FirstSeen:       now,
		}
	},
	Refresh: func(r TrackedDocument, d fedreg.Document, now string) TrackedDocument {
		r.Title = d.Title
		r.DocType = d.DocType
		r.PublicationDate = d.PublicationDate
		return r
	},
	StoredFingerprint: func(r TrackedDocument) Fingerprint {
		return Fingerprint{Text: r.Title, Date: r.PublicationDate}
	},
}

// CommitteeItemTracker tracks committee RSS items.
var CommitteeItemTracker = Tracker[committee.Item, TrackedCommitteeItem]{
	Name: "committee_item",
	Key:  func(i committee.Item) string { return i.ItemID },
	Fingerprint: func(i committee.Item) Fingerprint {
		return Fingerprint{Text: i.Title, Date: i.PublishedDate}
	},
	Record: func(i committee.Item, now string) TrackedCommitteeItem {
		return TrackedCommitteeItem{
			ItemID:        i.ItemID,
			Title:         i.Title,
			Link:          i.Link,
			PublishedDate: i.PublishedDate,
			SourceName:    i.SourceName,
			FirstSeen:     now,
			LastUpdated:   now,
		}
	},
	Refresh: func(r TrackedCommitteeItem, i committee.Item, now string) TrackedCommitteeItem {
		r.Title = i.Title
		r.Link = i.Link
		r.PublishedDate = i.PublishedDate
		r.LastUpdated = now
		return r
	},
	StoredFingerprint: func(r TrackedCommitteeItem) Fingerprint {
		return Fingerprint{Text: r.Title, Date: r.PublishedDate}
	},
}

// MeetingTracker tracks committee meetings by date and title, catching
// reschedules.
var MeetingTracker = Tracker[congress.Meeting, TrackedMeeting]{
	Name: "committee_meeting",
	Key:  func(m congress.Meeting) string { return m.EventID },
	Fingerprint: func(m congress.Meeting) Fingerprint {
		return Fingerprint{Text: m.Title, Date: m.Date}
	},
	Record: func(m congress.Meeting, now string) TrackedMeeting {
		return TrackedMeeting{
			EventID:       m.EventID,
			Title:         m.Title,
			MeetingType:   m.MeetingType,
			CommitteeName: m.CommitteeName,
			Date:          m.Date,
			FirstSeen:     now,
			LastUpdated:   now,
		}
	},
	Refresh: func(r TrackedMeeting, m congress.Meeting, now string) TrackedMeeting {
		r.Title = m.Title
		r.MeetingType = m.MeetingType
		r.CommitteeName = m.CommitteeName
		r.Date = m.Date
		r.LastUpdated = now
		return r
	},
	StoredFingerprint: func(r TrackedMeeting) Fingerprint {
		return Fingerprint{Text: r.Title, Date: r.Date}
	},
}

// DisasterTracker tracks FEMA disaster declarations. The incident end
// date moves from empty to set when an incident closes.
var DisasterTracker = Tracker[openfema.Declaration, TrackedDisaster]{
	Name: "disaster_declaration",
	Key:  func(d openfema.Declaration) string { return d.Key() },
	Fingerprint: func(d openfema.Declaration) Fingerprint {
		return Fingerprint{Text: d.DeclarationTitle, Date: d.IncidentEndDate}
	},
	Record: func(d openfema.Declaration, now string) TrackedDisaster {
		return TrackedDisaster{
			DisasterNumber:   d.DisasterNumber,
			DeclarationTitle: d.DeclarationTitle,
			State:            d.State,
			IncidentType:     d.IncidentType,
			DeclarationDate:  d.DeclarationDate,
			DesignatedArea:   d.DesignatedArea,
			IncidentEndDate:  d.IncidentEndDate,
			FirstSeen:        now,
			LastUpdated:      now,
		}
	},
	Refresh: func(r TrackedDisaster, d openfema.Declaration, now string) TrackedDisaster {
		r.DeclarationTitle = d.DeclarationTitle
		r.IncidentType = d.IncidentType
		r.IncidentEndDate = d.IncidentEndDate
		r.LastUpdated = now
		return r
	},
	StoredFingerprint: func(r TrackedDisaster) Fingerprint {
		return Fingerprint{Text: r.DeclarationTitle, Date: r.IncidentEndDate}
	},
}

// WatchlistTracker tracks manually watched bills by latest action.
var WatchlistTracker = Tracker[watchlist.Bill, TrackedWatchlistBill]{
	Name: "watchlist_bill",
	Key:  func(b watchlist.Bill) string { return b.BillID },
	Fingerprint: func(b watchlist.Bill) Fingerprint {
		return Fingerprint{Text: b.LastAction, Date: b.LastActionDate}
	},
	Record: func(b watchlist.Bill, now string) TrackedWatchlistBill {
		return TrackedWatchlistBill{
			BillID:           b.BillID,
			Title:            b.Title,
			LatestAction:     b.LastAction,
			LatestActionDate: b.LastActionDate,
			FirstSeen:        now,
			LastUpdated:      now,
		}
	},
	Refresh: func(r TrackedWatchlistBill, b watchlist.Bill, now string) TrackedWatchlistBill {
		r.Title = b.Title
		r.LatestAction = b.LastAction
		r.LatestActionDate = b.LastActionDate
		r.LastUpdated = now
		return r
	},
	StoredFingerprint: func(r TrackedWatchlistBill) Fingerprint {
		return Fingerprint{Text: r.LatestAction, Date: r.LatestActionDate}
	},
}
