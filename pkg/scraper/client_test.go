package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestOpenStoreStreamSendsRequest(t *testing.T) {
	var got ScrapeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/scraper/ebay-store-stream" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("unexpected Accept header %q", r.Header.Get("Accept"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sampleStream)
	}))
	defer server.Close()

	svc := NewScraperService(server.URL + "/")
	body, err := svc.OpenStoreStream(context.Background(), MarketplaceEbay, ScrapeRequest{
		StoreURL: "https://www.ebay.com/str/gadgethub",
		MaxPages: 50,
		Supplier: SupplierAmazon,
	})
	if err != nil {
		t.Fatalf("OpenStoreStream failed: %v", err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if string(data) != sampleStream {
		t.Errorf("unexpected body %q", data)
	}
	if got.StoreURL != "https://www.ebay.com/str/gadgethub" || got.MaxPages != 50 {
		t.Errorf("unexpected request body %+v", got)
	}
	if got.Supplier != SupplierNone {
		t.Error("supplier must not be sent to the stream endpoint")
	}
}

func TestOpenStoreStreamStatusErrors(t *testing.T) {
	cases := []struct {
		status   int
		body     string
		wantType ErrorType
		wantMsg  string
	}{
		{http.StatusInternalServerError, `{"error": "store not found"}`, ErrorTypeInvalidResponse, "API error: 500: store not found"},
		{http.StatusBadRequest, "bad url\n", ErrorTypeInvalidResponse, "API error: 400: bad url"},
		{http.StatusServiceUnavailable, "", ErrorTypeServiceUnavailable, ""},
	}

	for _, c := range cases {
		t.Run(fmt.Sprint(c.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				io.WriteString(w, c.body)
			}))
			defer server.Close()

			_, err := NewScraperService(server.URL).OpenStoreStream(context.Background(), MarketplaceEbay, ScrapeRequest{StoreURL: "x"})
			var scraperErr *ScraperError
			if !errors.As(err, &scraperErr) {
				t.Fatalf("expected ScraperError, got %v", err)
			}
			if scraperErr.Type != c.wantType {
				t.Errorf("expected type %s, got %s", c.wantType, scraperErr.Type)
			}
			if scraperErr.StatusCode != c.status {
				t.Errorf("expected status %d, got %d", c.status, scraperErr.StatusCode)
			}
			if c.wantMsg != "" && scraperErr.UserMessage() != c.wantMsg {
				t.Errorf("expected message %q, got %q", c.wantMsg, scraperErr.UserMessage())
			}
		})
	}
}

func TestOpenStoreStreamServiceDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewScraperService(url).OpenStoreStream(context.Background(), MarketplaceEbay, ScrapeRequest{StoreURL: "x"})
	var scraperErr *ScraperError
	if !errors.As(err, &scraperErr) || scraperErr.Type != ErrorTypeServiceUnavailable {
		t.Fatalf("expected service unavailable, got %v", err)
	}
}

func TestMatchTitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/match/titles" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req matchRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Locale != "en-US" || !reflect.DeepEqual(req.Titles, []string{"A", "B"}) {
			t.Errorf("unexpected request %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results": [{"title": "A", "matched_url": "https://x/a"}, {"title": "B", "matched_url": null}], "match_rate": 50}`)
	}))
	defer server.Close()

	svc := NewScraperService(server.URL, WithMatchRate(0))
	out, err := svc.MatchTitles(context.Background(), []string{"A", "B"}, "en-US")
	if err != nil {
		t.Fatalf("MatchTitles failed: %v", err)
	}
	if len(out.Results) != 2 || out.Results[0].MatchedURL == nil || out.Results[1].MatchedURL != nil {
		t.Errorf("unexpected results %+v", out.Results)
	}
	if out.MatchRate == nil || *out.MatchRate != 50 {
		t.Errorf("unexpected match rate %v", out.MatchRate)
	}
}

func TestMatchTitlesInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>")
	}))
	defer server.Close()

	_, err := NewScraperService(server.URL, WithMatchRate(0)).MatchTitles(context.Background(), []string{"A"}, "en-US")
	var scraperErr *ScraperError
	if !errors.As(err, &scraperErr) || scraperErr.Type != ErrorTypeInvalidResponse {
		t.Fatalf("expected invalid response, got %v", err)
	}
}

func TestMatchTitlesRespectsContextWhileLimited(t *testing.T) {
	svc := NewScraperService("http://127.0.0.1:1", WithMatchRate(0.001))
	// Drain the single burst token.
	svc.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := svc.MatchTitles(ctx, []string{"A"}, "en-US"); err == nil {
		t.Fatal("expected limiter wait to fail")
	}
}

func TestImport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		json.NewDecoder(r.Body).Decode(&req)
		if r.URL.Path != "/api/import" || req.URL != "https://amazon.com/dp/B0" {
			t.Errorf("unexpected request %s %+v", r.URL.Path, req)
		}
		io.WriteString(w, `{"products": [{"name": "Desk Lamp", "price": 19.99}], "errored_urls": [], "out_of_stock_urls": []}`)
	}))
	defer server.Close()

	out, err := NewScraperService(server.URL).Import(context.Background(), "https://amazon.com/dp/B0")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(out.Products) != 1 || out.Products[0].Name != "Desk Lamp" {
		t.Errorf("unexpected products %+v", out.Products)
	}
}

func TestCheckHealth(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	svc := NewScraperService(server.URL)
	if err := svc.CheckHealth(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
	healthy.Store(false)
	if err := svc.CheckHealth(context.Background()); err == nil {
		t.Fatal("expected error for unhealthy service")
	}
}

func TestSessionAgainstStreamingServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/scraper/ebay-store-stream":
			flusher := w.(http.Flusher)
			w.Header().Set("Content-Type", "text/event-stream")
			// Split frames across writes to exercise buffering.
			for _, part := range []string{sampleStream[:17], sampleStream[17:90], sampleStream[90:]} {
				io.WriteString(w, part)
				flusher.Flush()
			}
		case "/api/match/titles":
			io.WriteString(w, `{"results": [{"title": "Wireless Earbuds", "matched_url": "https://amazon.com/dp/1"}, {"title": "Phone Case", "matched_url": null}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	s := NewSession(NewScraperService(server.URL, WithMatchRate(0)), "en-US")
	res, err := s.Run(context.Background(), MarketplaceEbay, ebayRequest(SupplierAmazon), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Error != "" {
		t.Fatalf("unexpected error %q", res.Error)
	}
	if res.Count != 2 || !reflect.DeepEqual(res.MatchedURLs, []string{"https://amazon.com/dp/1"}) {
		t.Errorf("unexpected result %+v", res)
	}
	if res.MatchRate == nil || *res.MatchRate != 50 {
		t.Errorf("expected match rate 50, got %v", res.MatchRate)
	}
}

func TestSessionCancelAgainstStreamingServer(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		io.WriteString(w, "data: {\"status\": \"started\", \"total_estimate\": 10, \"store_name\": \"s\"}\n")
		io.WriteString(w, "data: {\"status\": \"scraping\", \"progress\": 2}\n")
		flusher.Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	s := NewSession(NewScraperService(server.URL), "en-US")
	res, _ := s.Run(context.Background(), MarketplaceEbay, ebayRequest(SupplierNone), func(p *ProgressState) {
		if p != nil && p.Current == 2 {
			s.Cancel()
		}
	})
	if !strings.HasPrefix(res.Error, "Scraping stopped at 2") {
		t.Errorf("unexpected error %q", res.Error)
	}
}
