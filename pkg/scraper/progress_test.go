package scraper

import "testing"

func intPtr(v int) *int { return &v }

func TestApplyStartedResetsCurrent(t *testing.T) {
	prev := &ProgressState{Current: 40, Status: StatusScraping}
	next := Apply(prev, EventStarted{TotalEstimate: intPtr(200), StoreName: "gadgethub"})

	if next.Current != 0 {
		t.Errorf("expected current reset to 0, got %d", next.Current)
	}
	if next.Status != StatusStarted {
		t.Errorf("expected status started, got %s", next.Status)
	}
	if next.TotalEstimate == nil || *next.TotalEstimate != 200 {
		t.Errorf("expected total 200, got %v", next.TotalEstimate)
	}
	if next.StoreName != "gadgethub" {
		t.Errorf("expected store name, got %q", next.StoreName)
	}
	if prev.Current != 40 {
		t.Error("Apply must not modify its input")
	}
}

func TestApplyScrapingTracksLastValue(t *testing.T) {
	var state *ProgressState
	state = Apply(state, EventStarted{StoreName: "s"})
	for _, p := range []int{1, 5, 5, 12, 30} {
		state = Apply(state, EventScraping{Progress: p})
	}
	if state.Current != 30 {
		t.Errorf("expected current 30, got %d", state.Current)
	}
	if state.Status != StatusScraping {
		t.Errorf("expected status scraping, got %s", state.Status)
	}
	if state.StoreName != "s" {
		t.Errorf("expected store name kept, got %q", state.StoreName)
	}
}

func TestApplyScrapingClampsRegression(t *testing.T) {
	state := Apply(nil, EventScraping{Progress: 20})
	state = Apply(state, EventScraping{Progress: 15})
	if state.Current != 20 {
		t.Errorf("expected clamp to 20, got %d", state.Current)
	}
	state = Apply(state, EventScraping{Progress: 21})
	if state.Current != 21 {
		t.Errorf("expected 21, got %d", state.Current)
	}
}

func TestApplyScrapingWithoutStarted(t *testing.T) {
	state := Apply(nil, EventScraping{Progress: 3})
	if state == nil || state.Current != 3 || state.TotalEstimate != nil {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestApplyDoneClears(t *testing.T) {
	state := Apply(nil, EventScraping{Progress: 3})
	if got := Apply(state, EventDone{Titles: []string{"A"}}); got != nil {
		t.Fatalf("expected nil state after done, got %+v", got)
	}
}

func TestProgressFraction(t *testing.T) {
	if f := (&ProgressState{Current: 5}).Fraction(); f != -1 {
		t.Errorf("expected -1 for unknown total, got %v", f)
	}
	if f := (&ProgressState{Current: 25, TotalEstimate: intPtr(100)}).Fraction(); f != 0.25 {
		t.Errorf("expected 0.25, got %v", f)
	}
	if f := (&ProgressState{Current: 150, TotalEstimate: intPtr(100)}).Fraction(); f != 1 {
		t.Errorf("expected fraction capped at 1, got %v", f)
	}
	var nilState *ProgressState
	if f := nilState.Fraction(); f != -1 {
		t.Errorf("expected -1 for nil state, got %v", f)
	}
}
