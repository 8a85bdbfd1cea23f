package scraper

// Apply folds one event into the progress state and returns the new state.
// The input is never modified. A nil result means the state is cleared,
// which happens on the terminal Done event.
//
// Scraping events carry absolute counts. A count lower than one already
// seen is clamped to the previous maximum, since chunked delivery can
// reorder frames.
func Apply(state *ProgressState, ev ProgressEvent) *ProgressState {
	switch e := ev.(type) {
	case EventStarted:
		next := &ProgressState{
			Current:   0,
			Status:    StatusStarted,
			StoreName: e.StoreName,
		}
		if e.TotalEstimate != nil {
			total := *e.TotalEstimate
			next.TotalEstimate = &total
		}
		return next

	case EventScraping:
		next := &ProgressState{Status: StatusScraping}
		if state != nil {
			*next = *state
			next.Status = StatusScraping
		}
		if e.Progress > next.Current {
			next.Current = e.Progress
		}
		return next

	case EventDone:
		return nil
	}
	return state
}

// clone returns a copy the caller may keep after the session moves on.
func (p *ProgressState) clone() *ProgressState {
	if p == nil {
		return nil
	}
	c := *p
	if p.TotalEstimate != nil {
		total := *p.TotalEstimate
		c.TotalEstimate = &total
	}
	return &c
}
