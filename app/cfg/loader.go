package cfg

import (
	"cmp"
	"fmt"
	"time"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Opts holds all process options, populated from command-line flags and
// environment variables by the go-flags parser in main.
type Opts struct {
	// Paths
	ConfigPath    string `long:"config" env:"TRACKER_CONFIG" default:"data/config.yaml" description:"Path to tracker configuration file"`
	WatchlistPath string `long:"watchlist" env:"TRACKER_WATCHLIST" default:"data/watchlist.yaml" description:"Path to priority bill watchlist file"`
	StatePath     string `long:"state" env:"TRACKER_STATE" default:"data/state.json" description:"Path to tracking state file"`
	OutputDir     string `long:"output-dir" env:"TRACKER_OUTPUT_DIR" default:"outputs/digests" description:"Directory for saved digests"`

	// API credentials
	CongressAPIKey string `long:"congress-api-key" env:"CONGRESS_API_KEY" description:"Congress.gov API key"`
	SendGridAPIKey string `long:"sendgrid-api-key" env:"SENDGRID_API_KEY" description:"SendGrid API key for email delivery"`

	// HTTP status server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP status server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authenticated endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NAFSMA Legislative Tracker/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Build turns parsed options into the process configuration and makes
// it available via Get.
func Build(raw Opts) *Cfg {
	cfg := &Cfg{
		ConfigPath:     raw.ConfigPath,
		WatchlistPath:  raw.WatchlistPath,
		StatePath:      raw.StatePath,
		OutputDir:      raw.OutputDir,
		CongressAPIKey: raw.CongressAPIKey,
		SendGridAPIKey: raw.SendGridAPIKey,
		Port:           raw.Port,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Build() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
