package cfg

type Cfg struct {
	// Paths
	ConfigPath    string
	WatchlistPath string
	StatePath     string
	OutputDir     string

	// API credentials
	CongressAPIKey string
	SendGridAPIKey string

	// HTTP status server
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
