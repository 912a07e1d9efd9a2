package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestBuildAndGet(t *testing.T) {
	raw := Opts{
		ConfigPath:     "data/config.yaml",
		WatchlistPath:  "data/watchlist.yaml",
		StatePath:      "data/state.json",
		OutputDir:      "outputs/digests",
		CongressAPIKey: "congress-key",
		SendGridAPIKey: "sendgrid-key",
		Port:           "9090",
		APIAccessKey:   "access-key",
		UserAgent:      "Test Agent",
		Timezone:       "UTC",
		Debug:          true,
	}

	built := Build(raw)

	if built.ConfigPath != "data/config.yaml" {
		t.Errorf("Expected config path 'data/config.yaml', got '%s'", built.ConfigPath)
	}
	if built.WatchlistPath != "data/watchlist.yaml" {
		t.Errorf("Expected watchlist path 'data/watchlist.yaml', got '%s'", built.WatchlistPath)
	}
	if built.StatePath != "data/state.json" {
		t.Errorf("Expected state path 'data/state.json', got '%s'", built.StatePath)
	}
	if built.CongressAPIKey != "congress-key" {
		t.Errorf("Expected congress API key, got '%s'", built.CongressAPIKey)
	}
	if built.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", built.Port)
	}
	if built.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", built.UserAgent)
	}
	if !built.Debug {
		t.Error("Expected debug enabled")
	}
	if built.Version == "" {
		t.Error("Expected version populated from build info")
	}

	if Get() != built {
		t.Error("Expected Get to return the built configuration")
	}
}

func TestBuildInvalidTimezone(t *testing.T) {
	// An invalid timezone must not prevent the configuration from
	// being built.
	built := Build(Opts{Timezone: "Not/AZone"})
	if built == nil {
		t.Fatal("Expected configuration despite invalid timezone")
	}
}
