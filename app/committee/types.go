package committee

// Item is a committee RSS feed item (hearing notice, press release,
// markup announcement). ItemID is the entry GUID, or a content hash
// when the feed provides none.
type Item struct {
	ItemID        string `json:"item_id"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	PublishedDate string `json:"published_date"`
	SourceName    string `json:"source_name"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
}
