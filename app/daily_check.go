package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nafsma/legis-tracker/app/cfg"
	"github.com/nafsma/legis-tracker/app/committee"
	"github.com/nafsma/legis-tracker/app/config"
	"github.com/nafsma/legis-tracker/app/congress"
	"github.com/nafsma/legis-tracker/app/digest"
	"github.com/nafsma/legis-tracker/app/email"
	"github.com/nafsma/legis-tracker/app/fedreg"
	"github.com/nafsma/legis-tracker/app/openfema"
	"github.com/nafsma/legis-tracker/app/state"
	"github.com/nafsma/legis-tracker/app/watchlist"
)

type dailyCheckCommand struct {
	SendEmail    bool `long:"send-email" description:"Email the digest to configured recipients"`
	NoSaveDigest bool `long:"no-save-digest" description:"Print the digest without saving it to disk"`
	DaysBack     int  `long:"days-back" default:"7" description:"How many days back to search for new documents"`
}

// Execute runs the daily check: fetch every source, detect changes
// against the snapshot, render and deliver the digest, then persist the
// snapshot once. Source fetch failures skip that source; a detector
// error aborts the remaining pipeline but the mutations made before the
// failure are still persisted.
func (c *dailyCheckCommand) Execute(args []string) error {
	appCfg := cfg.Get()
	ctx := context.Background()

	slog.Info("Starting daily legislative check", "version", appCfg.Version)

	trackerCfg, err := config.Load(appCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store := state.NewStore(appCfg.StatePath)
	snapshot := store.Load()

	now := time.Now()
	nowStr := now.Format(time.RFC3339)
	data := digest.Data{Date: now.Format("2006-01-02")}

	congressClient := congress.NewClient(appCfg.CongressAPIKey, appCfg.UserAgent)
	frClient := fedreg.NewClient(appCfg.UserAgent)
	femaClient := openfema.NewClient(appCfg.UserAgent)
	committeeClient := committee.NewClient(appCfg.UserAgent)

	detectErr := c.runDetectors(ctx, trackerCfg, snapshot, nowStr, &data,
		congressClient, frClient, femaClient, committeeClient)

	if detectErr == nil {
		c.deliver(trackerCfg, &data)
		store.SetLastRun(now)
	}

	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	if detectErr != nil {
		return fmt.Errorf("daily check aborted: %w", detectErr)
	}

	slog.Info("Daily check completed", "updates", data.UpdateCount(), "tracked", snapshot.TrackedCount())
	return nil
}

// runDetectors fetches each source and folds the results into the
// snapshot, collecting digest data along the way. The first detector
// error stops further sources.
func (c *dailyCheckCommand) runDetectors(ctx context.Context, trackerCfg *config.Config,
	snapshot *state.Snapshot, nowStr string, data *digest.Data,
	congressClient *congress.Client, frClient *fedreg.Client,
	femaClient *openfema.Client, committeeClient *committee.Client) error {

	appCfg := cfg.Get()

	// Bills
	if bills, err := congress.FindRelevantBills(ctx, congressClient, trackerCfg); err != nil {
		slog.Error("Skipping bill tracking, fetch failed", "error", err)
	} else {
		updates, err := state.BillTracker.DetectAndRecord(snapshot.Bills, bills, nowStr)
		if err != nil {
			return err
		}
		added, changed := state.ByKind(updates)
		for _, u := range added {
			data.NewBills = append(data.NewBills, u.Entity)
		}
		for _, u := range changed {
			data.BillChanges = append(data.BillChanges, digest.BillChange{
				Bill:           u.Entity,
				PreviousAction: u.Previous.Text,
				PreviousDate:   u.Previous.Date,
			})
		}
	}

	// Federal Register documents
	documents := fedreg.FetchAgencyDocuments(ctx, frClient, trackerCfg, c.DaysBack)
	if len(documents) > 0 {
		updates, err := state.DocumentTracker.DetectAndRecord(snapshot.FederalRegisterDocuments, documents, nowStr)
		if err != nil {
			return err
		}
		added, _ := state.ByKind(updates)
		for _, u := range added {
			data.NewDocuments = append(data.NewDocuments, u.Entity)
		}
	}
	data.CommentAlerts = fedreg.ClosingCommentPeriods(documents, trackerCfg.FederalRegister.CommentWarningDays)

	// Committee RSS items
	if items := committee.FetchAll(ctx, committeeClient, trackerCfg); len(items) > 0 {
		updates, err := state.CommitteeItemTracker.DetectAndRecord(snapshot.CommitteeItems, items, nowStr)
		if err != nil {
			return err
		}
		added, _ := state.ByKind(updates)
		for _, u := range added {
			data.NewCommitteeItems = append(data.NewCommitteeItems, u.Entity)
		}
	}

	// Committee meetings
	if meetings := congress.FetchTrackedMeetings(ctx, congressClient, trackerCfg); len(meetings) > 0 {
		updates, err := state.MeetingTracker.DetectAndRecord(snapshot.CommitteeMeetings, meetings, nowStr)
		if err != nil {
			return err
		}
		added, _ := state.ByKind(updates)
		for _, u := range added {
			data.NewMeetings = append(data.NewMeetings, u.Entity)
		}
	}

	// Disaster declarations
	daysBack := trackerCfg.Disasters.DaysBack
	if disasters := femaClient.FloodRelatedDisasters(ctx, daysBack, 100); len(disasters) > 0 {
		updates, err := state.DisasterTracker.DetectAndRecord(snapshot.DisasterDeclarations, disasters, nowStr)
		if err != nil {
			return err
		}
		added, _ := state.ByKind(updates)
		for _, u := range added {
			data.NewDisasters = append(data.NewDisasters, u.Entity)
		}
	}

	// Watchlist bills
	if watched, err := watchlist.CheckBills(ctx, appCfg.WatchlistPath, congressClient); err != nil {
		slog.Error("Skipping watchlist tracking, load failed", "error", err)
	} else if len(watched) > 0 {
		updates, err := state.WatchlistTracker.DetectAndRecord(snapshot.WatchlistBills, watched, nowStr)
		if err != nil {
			return err
		}
		_, changed := state.ByKind(updates)
		for _, u := range changed {
			data.WatchlistChanges = append(data.WatchlistChanges, digest.WatchlistChange{
				Bill:           u.Entity,
				PreviousAction: u.Previous.Text,
				PreviousDate:   u.Previous.Date,
			})
		}
	}

	if items, err := watchlist.RegulatoryItems(appCfg.WatchlistPath, time.Now()); err != nil {
		slog.Warn("Could not load regulatory watchlist items", "error", err)
	} else {
		data.RegulatoryItems = items
	}

	data.TrackedTotal = snapshot.TrackedCount()
	return nil
}

// deliver renders the digest and saves, prints, and emails it per the
// command flags. Delivery problems are reported but never abort the run.
func (c *dailyCheckCommand) deliver(trackerCfg *config.Config, data *digest.Data) {
	appCfg := cfg.Get()

	generator, err := digest.NewGenerator()
	if err != nil {
		slog.Error("Digest generator unavailable", "error", err)
		return
	}

	content, err := generator.Render(*data)
	if err != nil {
		slog.Error("Failed to render digest", "error", err)
		return
	}

	if c.NoSaveDigest {
		fmt.Println(content)
	} else {
		path, err := generator.Save(content, appCfg.OutputDir, data.Date)
		if err != nil {
			slog.Error("Failed to save digest", "error", err)
		} else {
			slog.Info("Digest saved", "path", path)
		}
	}

	if c.SendEmail {
		client := email.NewClient(appCfg.SendGridAPIKey, trackerCfg.Email)

		result := client.SendDigest(content, data.Date)
		if !result.Success {
			slog.Error("Digest email not delivered", "message", result.Message)
		}

		if len(data.CommentAlerts) > 0 {
			result := client.SendCommentAlert(data.CommentAlerts, data.Date)
			if !result.Success {
				slog.Error("Comment alert email not delivered", "message", result.Message)
			}
		}
	}
}
