package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nafsma/legis-tracker/app/cfg"
	"github.com/nafsma/legis-tracker/app/state"
)

type showStateCommand struct {
	Verbose bool `long:"verbose" short:"v" description:"List every tracked item"`
}

func (c *showStateCommand) Execute(args []string) error {
	appCfg := cfg.Get()
	store := state.NewStore(appCfg.StatePath)
	snapshot := store.Load()

	fmt.Printf("State file: %s\n", store.Path())
	if snapshot.LastRun != nil {
		fmt.Printf("Last run:   %s\n", *snapshot.LastRun)
	} else {
		fmt.Println("Last run:   never")
	}

	fmt.Println("\nTracked items:")
	fmt.Printf("  Bills:                      %d\n", len(snapshot.Bills))
	fmt.Printf("  Federal Register documents: %d\n", len(snapshot.FederalRegisterDocuments))
	fmt.Printf("  Committee items:            %d\n", len(snapshot.CommitteeItems))
	fmt.Printf("  Committee meetings:         %d\n", len(snapshot.CommitteeMeetings))
	fmt.Printf("  Disaster declarations:      %d\n", len(snapshot.DisasterDeclarations))
	fmt.Printf("  Watchlist bills:            %d\n", len(snapshot.WatchlistBills))
	fmt.Printf("  Total:                      %d\n", snapshot.TrackedCount())

	if c.Verbose {
		printBills(snapshot)
	}
	return nil
}

func printBills(snapshot *state.Snapshot) {
	if len(snapshot.Bills) > 0 {
		fmt.Println("\nBills:")
		for _, key := range sortedKeys(snapshot.Bills) {
			bill := snapshot.Bills[key]
			fmt.Printf("  %s  %s\n    last action: %s (%s)\n", bill.BillID, bill.Title, bill.LastAction, bill.LastActionDate)
		}
	}
	if len(snapshot.WatchlistBills) > 0 {
		fmt.Println("\nWatchlist bills:")
		for _, key := range sortedKeys(snapshot.WatchlistBills) {
			bill := snapshot.WatchlistBills[key]
			fmt.Printf("  %s  %s\n    last action: %s (%s)\n", bill.BillID, bill.Title, bill.LatestAction, bill.LatestActionDate)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type resetStateCommand struct {
	Yes bool `long:"yes" short:"y" description:"Skip the confirmation prompt"`
}

func (c *resetStateCommand) Execute(args []string) error {
	appCfg := cfg.Get()
	store := state.NewStore(appCfg.StatePath)

	if !c.Yes {
		fmt.Printf("Delete tracking state at %s? All %d tracked items will be forgotten. [y/N]: ",
			store.Path(), store.Load().TrackedCount())

		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.Reset(); err != nil {
		return err
	}
	fmt.Println("Tracking state reset.")
	return nil
}
