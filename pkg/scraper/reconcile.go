package scraper

import (
	"fmt"
	"math"
)

// ReconcileInput is everything the reconciler needs once titles are final.
type ReconcileInput struct {
	Platform string
	Titles   []string
	Supplier Supplier

	// StreamError is the error carried by the terminal Done event, if any.
	StreamError string

	// Outcome and MatchErr hold the title-matching call's result. Both are
	// nil when matching was skipped.
	Outcome  *MatchOutcome
	MatchErr error
}

// ShouldMatch reports whether titles should be sent to the matching call.
func ShouldMatch(supplier Supplier, titles []string) bool {
	return supplier.SupportsMatching() && len(titles) > 0
}

// PlatformLabel is the platform line shown for a settled scrape, e.g.
// "eBay (Amazon supplier)".
func PlatformLabel(marketplace Marketplace, supplier Supplier) string {
	if supplier == SupplierNone || marketplace != MarketplaceEbay {
		return marketplace.Label()
	}
	return fmt.Sprintf("%s (%s supplier)", marketplace.Label(), supplier.Label())
}

// Reconcile builds the ScrapeResult to present. It has no state of its own
// and performs no I/O.
func Reconcile(in ReconcileInput) ScrapeResult {
	titles := make([]string, len(in.Titles))
	copy(titles, in.Titles)

	res := ScrapeResult{
		Platform: in.Platform,
		Count:    len(titles),
		Titles:   titles,
		Error:    in.StreamError,
	}

	if !ShouldMatch(in.Supplier, titles) {
		return res
	}

	if in.MatchErr != nil {
		if res.Error == "" {
			res.Error = newMatchFailedError(in.MatchErr).UserMessage()
		}
		return res
	}
	if in.Outcome == nil {
		return res
	}

	urls, matched := matchedInOrder(titles, in.Outcome.Results)
	res.MatchedURLs = urls

	var rate float64
	if in.Outcome.MatchRate != nil {
		rate = math.Round(*in.Outcome.MatchRate)
	} else {
		rate = math.Round(float64(matched) / float64(len(titles)) * 100)
	}
	res.MatchRate = &rate

	return res
}

// matchedInOrder returns matched URLs in the order of titles. Results are
// paired by position when the title agrees, otherwise by title.
func matchedInOrder(titles []string, results []MatchResult) ([]string, int) {
	byTitle := make(map[string][]int, len(results))
	for i, r := range results {
		byTitle[r.Title] = append(byTitle[r.Title], i)
	}
	used := make([]bool, len(results))

	take := func(i int) *MatchResult {
		used[i] = true
		return &results[i]
	}

	urls := make([]string, 0, len(titles))
	for i, title := range titles {
		var r *MatchResult
		if i < len(results) && !used[i] && results[i].Title == title {
			r = take(i)
		} else {
			for _, j := range byTitle[title] {
				if !used[j] {
					r = take(j)
					break
				}
			}
		}
		if r != nil && r.MatchedURL != nil && *r.MatchedURL != "" {
			urls = append(urls, *r.MatchedURL)
		}
	}
	return urls, len(urls)
}
