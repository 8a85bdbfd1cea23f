package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// StreamBackend is the part of the backend a Session drives.
// *ScraperService implements it.
type StreamBackend interface {
	OpenStoreStream(ctx context.Context, marketplace Marketplace, req ScrapeRequest) (io.ReadCloser, error)
	MatchTitles(ctx context.Context, titles []string, locale string) (*MatchOutcome, error)
}

// ProgressCallback is called on the Run goroutine each time the progress
// state changes. A nil state means progress was cleared.
type ProgressCallback func(state *ProgressState)

// Session owns the single active scrape of one page: its flow state, its
// progress view and its settled result.
type Session struct {
	backend StreamBackend
	locale  string

	mu              sync.Mutex
	state           FlowState
	progress        *ProgressState
	result          *ScrapeResult
	cancel          context.CancelFunc
	cancelRequested bool
	stoppedAt       int
}

// NewSession creates an idle session.
func NewSession(backend StreamBackend, locale string) *Session {
	if locale == "" {
		locale = "en-US"
	}
	return &Session{
		backend: backend,
		locale:  locale,
		state:   StateIdle,
	}
}

// State returns the current flow state.
func (s *Session) State() FlowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns a copy of the live progress, or nil when none is shown.
func (s *Session) Progress() *ProgressState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.clone()
}

// Result returns the settled result, or nil while a scrape is active or
// before the first one.
func (s *Session) Result() *ScrapeResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	r.Titles = append([]string(nil), s.result.Titles...)
	if s.result.MatchedURLs != nil {
		r.MatchedURLs = append([]string(nil), s.result.MatchedURLs...)
	}
	if s.result.MatchRate != nil {
		rate := *s.result.MatchRate
		r.MatchRate = &rate
	}
	return &r
}

// Active reports whether a scrape is between Requesting and Settled.
func (s *Session) Active() bool {
	return isActive(s.State())
}

func isActive(st FlowState) bool {
	return st == StateRequesting || st == StateStreaming || st == StateReconciling
}

// Cancel asks the active scrape to stop. Progress is cleared at once and
// later events are ignored. It is a no-op when nothing is running and safe
// to call more than once.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !isActive(s.state) || s.cancel == nil || s.cancelRequested {
		return
	}
	s.cancelRequested = true
	if s.progress != nil {
		s.stoppedAt = s.progress.Current
	}
	s.progress = nil
	s.cancel()
}

// Reset returns a settled session to Idle, dropping its result.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSettled {
		return
	}
	s.state = StateIdle
	s.result = nil
}

// Run performs one scrape and always settles with a ScrapeResult:
// success, partial or error. The only error returned is
// ErrScrapeInProgress when another Run is still active.
func (s *Session) Run(ctx context.Context, marketplace Marketplace, req ScrapeRequest, onProgress ProgressCallback) (ScrapeResult, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if isActive(s.state) {
		s.mu.Unlock()
		return ScrapeResult{}, ErrScrapeInProgress
	}
	s.state = StateRequesting
	s.progress = nil
	s.result = nil
	s.cancel = cancel
	s.cancelRequested = false
	s.stoppedAt = 0
	s.mu.Unlock()

	platform := PlatformLabel(marketplace, req.Supplier)

	if strings.TrimSpace(req.StoreURL) == "" {
		return s.settle(ScrapeResult{
			Platform: platform,
			Titles:   []string{},
			Error:    (&ScraperError{Type: ErrorTypeInvalidURL, Message: "store URL is required"}).UserMessage(),
		}), nil
	}

	body, err := s.backend.OpenStoreStream(runCtx, marketplace, req)
	if err != nil {
		return s.settle(s.failure(runCtx, platform, err)), nil
	}
	defer body.Close()
	// Closing the body unblocks a read that is waiting on the network.
	stop := context.AfterFunc(runCtx, func() { body.Close() })
	defer stop()

	s.setState(StateStreaming)

	reader := NewStreamReader(runCtx, body)
	var done *EventDone
	for done == nil {
		ev, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) && runCtx.Err() == nil {
				err = newNetworkError(errors.New("stream ended before the scrape completed"))
			}
			return s.settle(s.failure(runCtx, platform, err)), nil
		}

		p, ok := s.applyEvent(ev)
		if !ok {
			return s.settle(s.failure(runCtx, platform, context.Canceled)), nil
		}
		if d, ok := ev.(EventDone); ok {
			done = &d
		}
		if onProgress != nil {
			onProgress(p)
		}
	}

	in := ReconcileInput{
		Platform:    platform,
		Titles:      done.Titles,
		Supplier:    req.Supplier,
		StreamError: done.Error,
	}
	if ShouldMatch(req.Supplier, done.Titles) {
		s.setState(StateReconciling)
		outcome, err := s.backend.MatchTitles(runCtx, done.Titles, s.locale)
		if s.cancelled() {
			// Stopped while matching: the scraped titles stand, unmatched.
			res := Reconcile(ReconcileInput{
				Platform:    platform,
				Titles:      done.Titles,
				Supplier:    req.Supplier,
				StreamError: done.Error,
			})
			if res.Error == "" {
				res.Error = stoppedMessage(len(done.Titles))
			}
			return s.settle(res), nil
		}
		in.Outcome, in.MatchErr = outcome, err
	}

	return s.settle(Reconcile(in)), nil
}

// failure builds the result for a scrape that ended without a Done event.
// User cancellation is reported with the last observed count rather than
// as a transport failure.
func (s *Session) failure(ctx context.Context, platform string, err error) ScrapeResult {
	s.mu.Lock()
	cancelled := s.cancelRequested
	current := s.stoppedAt
	if !cancelled && s.progress != nil {
		current = s.progress.Current
	}
	s.progress = nil
	s.mu.Unlock()

	if cancelled || errors.Is(ctx.Err(), context.Canceled) {
		return StoppedResult(platform, current)
	}

	return ScrapeResult{
		Platform: platform,
		Titles:   []string{},
		Error:    classifyTransportError(err).UserMessage(),
	}
}

// StoppedResult is the result shown when the user stops a scrape.
func StoppedResult(platform string, current int) ScrapeResult {
	return ScrapeResult{
		Platform: platform,
		Count:    0,
		Titles:   []string{},
		Error:    stoppedMessage(current),
	}
}

func stoppedMessage(current int) string {
	return fmt.Sprintf("Scraping stopped at %d products", current)
}

// applyEvent folds ev into the live progress. It reports false once the
// scrape has been cancelled.
func (s *Session) applyEvent(ev ProgressEvent) (*ProgressState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelRequested {
		return nil, false
	}
	s.progress = Apply(s.progress, ev)
	return s.progress.clone(), true
}

func (s *Session) cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelRequested
}

func (s *Session) setState(st FlowState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) settle(res ScrapeResult) ScrapeResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = nil
	r := res
	s.result = &r
	s.state = StateSettled
	s.cancel = nil
	return res
}
