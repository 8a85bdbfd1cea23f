package scraper

import (
	"context"
	"strings"
)

// Importer performs one-shot product imports. *ScraperService implements it.
type Importer interface {
	Import(ctx context.Context, url string) (*ImportResponse, error)
}

// MarketplaceForURL infers which importer handles a product URL.
func MarketplaceForURL(raw string) (Marketplace, bool) {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "aliexpress."):
		return MarketplaceAliExpress, true
	case strings.Contains(s, "amazon.") || strings.Contains(s, "amzn."):
		return MarketplaceAmazon, true
	case strings.Contains(s, "ebay.com"):
		return MarketplaceEbay, true
	}
	return "", false
}

// ImportResult imports a single listing from a marketplace that has no
// streaming scraper and presents it as a ScrapeResult. Errors are carried
// in the result rather than returned.
func ImportResult(ctx context.Context, importer Importer, marketplace Marketplace, url string) ScrapeResult {
	res := ScrapeResult{
		Platform: marketplace.Label(),
		Titles:   []string{},
	}

	if strings.TrimSpace(url) == "" {
		res.Error = (&ScraperError{Type: ErrorTypeInvalidURL, Message: "URL is required"}).UserMessage()
		return res
	}

	out, err := importer.Import(ctx, url)
	if err != nil {
		res.Error = UserMessage(classifyTransportError(err))
		return res
	}

	switch {
	case len(out.Products) > 0:
		for _, p := range out.Products {
			name := strings.TrimSpace(p.Name)
			if name == "" {
				name = "Product scraped"
			}
			res.Titles = append(res.Titles, name)
		}
		res.Count = len(res.Titles)
	case len(out.ErroredURLs) > 0:
		res.Error = "Failed to import product. Please check the URL and try again."
	case out.Message != "":
		res.Error = out.Message
	default:
		res.Error = "Import failed"
	}

	return res
}
