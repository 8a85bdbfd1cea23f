package format

import (
	"fmt"
	"strings"

	"dropflow-go/pkg/scraper"
)

// PreviewTitles is how many titles a result shows before summarizing.
const PreviewTitles = 20

// ResultHeadline is the first line of a settled scrape.
func ResultHeadline(res scraper.ScrapeResult) string {
	return fmt.Sprintf("Scraped %d products from %s", res.Count, res.Platform)
}

// TitlePreview returns at most PreviewTitles titles and the overflow count.
func TitlePreview(titles []string) ([]string, int) {
	if len(titles) <= PreviewTitles {
		return titles, 0
	}
	return titles[:PreviewTitles], len(titles) - PreviewTitles
}

// MatchRateLine describes the match rate, or "" when matching did not run.
func MatchRateLine(res scraper.ScrapeResult) string {
	if res.MatchRate == nil {
		return ""
	}
	return fmt.Sprintf("Matched %d of %d titles on the supplier (%.0f%%)", len(res.MatchedURLs), res.Count, *res.MatchRate)
}

// ScrapeResultText renders a result for plain terminal output.
func ScrapeResultText(res scraper.ScrapeResult) string {
	var b strings.Builder

	if res.Error != "" && res.Count == 0 {
		fmt.Fprintf(&b, "✗ %s\n", res.Error)
		return b.String()
	}

	fmt.Fprintf(&b, "✓ %s\n\n", ResultHeadline(res))
	preview, more := TitlePreview(res.Titles)
	for _, t := range preview {
		fmt.Fprintf(&b, "  %s\n", t)
	}
	if more > 0 {
		fmt.Fprintf(&b, "  ...and %d more\n", more)
	}
	if line := MatchRateLine(res); line != "" {
		fmt.Fprintf(&b, "\n%s\n", line)
	}
	if res.Error != "" {
		fmt.Fprintf(&b, "\n⚠ %s\n", res.Error)
	}
	return b.String()
}

// ProgressLine renders live progress for line-oriented output.
func ProgressLine(p *scraper.ProgressState) string {
	if p == nil {
		return ""
	}
	name := p.StoreName
	if name == "" {
		name = "store"
	}
	if p.TotalEstimate != nil && *p.TotalEstimate > 0 {
		return fmt.Sprintf("Scraping %s: %d / ~%d products (%.0f%%)", name, p.Current, *p.TotalEstimate, p.Fraction()*100)
	}
	if p.Status == scraper.StatusStarted {
		return fmt.Sprintf("Started scraping %s...", name)
	}
	return fmt.Sprintf("Scraping %s: %d products", name, p.Current)
}
