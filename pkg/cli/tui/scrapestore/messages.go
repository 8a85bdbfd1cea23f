package scrapestore

import "dropflow-go/pkg/scraper"

// ProgressMsg carries the latest progress snapshot. A nil State means
// progress was cleared.
type ProgressMsg struct {
	State *scraper.ProgressState
}

// ProgressTickMsg is emitted periodically to check progress
type ProgressTickMsg struct {
	Done bool
}

// DoneMsg is emitted when the scrape has settled
type DoneMsg struct {
	Result scraper.ScrapeResult
	Err    error
}
