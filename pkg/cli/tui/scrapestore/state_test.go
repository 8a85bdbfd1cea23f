package scrapestore

import (
	"testing"

	"dropflow-go/pkg/scraper"
)

func TestPublishKeepsLatest(t *testing.T) {
	ch := make(chan ProgressMsg, 1)
	for i := 1; i <= 5; i++ {
		Publish(ch, ProgressMsg{State: &scraper.ProgressState{Current: i}})
	}
	got := <-ch
	if got.State.Current != 5 {
		t.Fatalf("expected latest snapshot 5, got %d", got.State.Current)
	}
	select {
	case extra := <-ch:
		t.Fatalf("expected a single buffered snapshot, got %+v", extra)
	default:
	}
}
