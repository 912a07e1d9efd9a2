package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/nafsma/legis-tracker/app/cfg"
	"github.com/nafsma/legis-tracker/app/config"
	"github.com/nafsma/legis-tracker/app/congress"
)

type searchCommand struct {
	Congress int `long:"congress" default:"119" description:"Congress number to search within"`
	Limit    int `long:"limit" default:"20" description:"Maximum number of results"`

	Args struct {
		Query []string `positional-arg-name:"query" required:"1" description:"Search terms"`
	} `positional-args:"yes"`
}

// Execute searches Congress.gov for bills. This is a read-only lookup;
// tracking state is never touched.
func (c *searchCommand) Execute(args []string) error {
	appCfg := cfg.Get()
	query := strings.Join(c.Args.Query, " ")

	trackerCfg, err := config.Load(appCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := congress.NewClient(appCfg.CongressAPIKey, appCfg.UserAgent)

	results, err := client.SearchBills(context.Background(), query, c.Congress, c.Limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No bills found matching %q\n", query)
		return nil
	}

	fmt.Printf("Found %d bills matching %q:\n\n", len(results), query)
	for _, data := range results {
		bill := congress.BuildBillInfo(data, trackerCfg.Congress.PriorityKeywords)
		fmt.Printf("  %s  %s\n", bill.BillID, bill.Title)
		if bill.LatestAction != "" {
			fmt.Printf("      Latest action: %s (%s)\n", bill.LatestAction, bill.LatestActionDate)
		}
		fmt.Printf("      %s\n\n", bill.URL)
	}
	return nil
}
