package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the API origin used when none is configured.
const DefaultBaseURL = "https://dropflow-production.up.railway.app"

// ScraperService talks to the DropFlow backend: store streams, title
// matching and one-shot imports.
type ScraperService struct {
	baseURL      string
	client       *http.Client
	streamClient *http.Client
	limiter      *rate.Limiter
}

// Option configures a ScraperService.
type Option func(*ScraperService)

// WithHTTPClient replaces the client used for request/response calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *ScraperService) { s.client = c }
}

// WithMatchRate limits title-matching calls to rps per second.
// A non-positive rps disables the limit.
func WithMatchRate(rps float64) Option {
	return func(s *ScraperService) {
		if rps <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func NewScraperService(baseURL string, opts ...Option) *ScraperService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	s := &ScraperService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		// Streams run as long as the scrape does; the caller's context
		// bounds them instead of a client timeout.
		streamClient: &http.Client{},
		limiter:      rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the API origin requests are sent to.
func (s *ScraperService) BaseURL() string {
	return s.baseURL
}

// CheckHealth verifies the service is available
func (s *ScraperService) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return newServiceUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newHTTPStatusError(resp.StatusCode, "")
	}

	return nil
}

// OpenStoreStream starts a store scrape and returns the chunked progress
// body. The caller must close it. A non-success status is reported as an
// error before any streaming happens.
func (s *ScraperService) OpenStoreStream(ctx context.Context, marketplace Marketplace, scrapeReq ScrapeRequest) (io.ReadCloser, error) {
	path := fmt.Sprintf("/api/scraper/%s-store-stream", marketplace)
	req, err := s.newJSONRequest(ctx, path, scrapeReq)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.streamClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, newHTTPStatusError(resp.StatusCode, apiErrorMessage(body))
	}

	return resp.Body, nil
}

type matchRequest struct {
	Titles []string `json:"titles"`
	Locale string   `json:"locale"`
}

// MatchTitles asks the backend to find a supplier listing for each title.
func (s *ScraperService) MatchTitles(ctx context.Context, titles []string, locale string) (*MatchOutcome, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(err)
	}

	var outcome MatchOutcome
	if err := s.postJSON(ctx, "/api/match/titles", matchRequest{Titles: titles, Locale: locale}, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

type importRequest struct {
	URL string `json:"url"`
}

// Import imports a single product listing by URL.
func (s *ScraperService) Import(ctx context.Context, url string) (*ImportResponse, error) {
	var out ImportResponse
	if err := s.postJSON(ctx, "/api/import", importRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ScraperService) newJSONRequest(ctx context.Context, path string, payload interface{}) (*http.Request, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (s *ScraperService) postJSON(ctx context.Context, path string, payload, result interface{}) error {
	req, err := s.newJSONRequest(ctx, path, payload)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPStatusError(resp.StatusCode, apiErrorMessage(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return newInvalidResponseError("failed to decode response", err)
	}
	return nil
}

// apiErrorMessage extracts {"error": "..."} from an error body, falling
// back to the trimmed raw body.
func apiErrorMessage(body []byte) string {
	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		return errorResp.Error
	}
	return strings.TrimSpace(string(body))
}
