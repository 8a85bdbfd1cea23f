package cli

import (
	"context"
	"fmt"
	"time"

	"dropflow-go/pkg/cli/logger"
	"dropflow-go/pkg/scraper"
	"dropflow-go/pkg/utils"
)

// HandleImportCommand imports a single Amazon or AliExpress product.
func (a *App) HandleImportCommand(productURL string) error {
	productURL, err := utils.ValidateURL(productURL)
	if err != nil {
		return err
	}

	marketplace, ok := scraper.MarketplaceForURL(productURL)
	switch {
	case !ok:
		return fmt.Errorf("unsupported marketplace: expected an Amazon or AliExpress product URL")
	case marketplace == scraper.MarketplaceEbay:
		return fmt.Errorf("eBay stores are scraped with --scrape, not imported")
	}

	svc, err := a.getScraperService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Fprintf(a.out, "⏳ Importing from %s...\n", marketplace.Label())
	res := scraper.ImportResult(ctx, svc, marketplace, productURL)
	logger.Log("import settled: platform=%s count=%d error=%q", res.Platform, res.Count, res.Error)
	return a.printResult(res)
}
