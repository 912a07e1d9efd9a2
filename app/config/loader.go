package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the tracker configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	slog.Debug("Loaded configuration", "path", path,
		"agencies", len(config.FederalRegister.Agencies),
		"rss_feeds", len(config.Committees.RSSFeeds))

	return &config, nil
}

func setDefaults(config *Config) {
	if config.Congress.CurrentCongress == 0 {
		config.Congress.CurrentCongress = 119
	}
	if len(config.FederalRegister.DocumentTypes) == 0 {
		config.FederalRegister.DocumentTypes = []string{"Proposed Rule", "Rule", "Notice"}
	}
	if config.FederalRegister.CommentWarningDays == 0 {
		config.FederalRegister.CommentWarningDays = 7
	}
	if config.Committees.MeetingsDaysBack == 0 {
		config.Committees.MeetingsDaysBack = 14
	}
	if config.Disasters.DaysBack == 0 {
		config.Disasters.DaysBack = 30
	}
}

func validate(config *Config) error {
	if config.Congress.CurrentCongress < 0 {
		return fmt.Errorf("current congress must be non-negative")
	}

	for i, agency := range config.FederalRegister.Agencies {
		if agency.Slug == "" {
			return fmt.Errorf("federal register agency at index %d has no slug", i)
		}
	}

	for i, feed := range config.Committees.RSSFeeds {
		if feed.URL == "" {
			return fmt.Errorf("committee RSS feed at index %d has no URL", i)
		}
		if feed.Name == "" {
			return fmt.Errorf("committee RSS feed at index %d has no name", i)
		}
	}

	for i, committee := range config.Committees.TrackedCommittees {
		if committee.Code == "" {
			return fmt.Errorf("tracked committee at index %d has no code", i)
		}
	}

	return nil
}
