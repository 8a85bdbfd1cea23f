package scrapestore

import (
	"dropflow-go/pkg/scraper"
)

// State holds everything the scrape-store view renders between steps.
type State struct {
	Progress     *scraper.ProgressState
	Result       *scraper.ScrapeResult
	Err          error
	ProgressChan chan ProgressMsg
}

// Publish offers msg to the progress channel without blocking the stream
// reader. When the UI has not drained the previous snapshot it is replaced,
// since every snapshot is absolute.
func Publish(ch chan ProgressMsg, msg ProgressMsg) {
	for {
		select {
		case ch <- msg:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
