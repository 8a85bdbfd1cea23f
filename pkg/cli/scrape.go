package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dropflow-go/pkg/cli/format"
	"dropflow-go/pkg/cli/logger"
	"dropflow-go/pkg/scraper"
	"dropflow-go/pkg/utils"
)

// ErrNoResults is returned when a scrape or import settles with nothing
// to show. The result has already been printed.
var ErrNoResults = errors.New("no products scraped")

// HandleHealthCommand checks that the DropFlow backend is reachable
func (a *App) HandleHealthCommand() error {
	svc, err := a.getScraperService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Fprint(a.out, "⏳ Checking DropFlow backend... ")
	if err := svc.CheckHealth(ctx); err != nil {
		fmt.Fprintln(a.out, "✗")
		return backendUnavailable(svc.BaseURL(), err)
	}
	fmt.Fprintln(a.out, "✓")
	return nil
}

// HandleScrapeCommand handles the --scrape command: it streams an eBay
// store scrape, printing progress until the result settles. Ctrl+C stops
// the scrape and prints what was found so far.
func (a *App) HandleScrapeCommand(storeURL, supplierName string, maxPages int) error {
	storeURL, err := utils.ValidateURL(storeURL)
	if err != nil {
		return err
	}

	supplier, err := scraper.ParseSupplier(supplierName)
	if err != nil {
		return err
	}
	if maxPages <= 0 {
		maxPages = a.cfg.CLI.MaxPages
	}

	if err := a.HandleHealthCommand(); err != nil {
		return err
	}
	svc, err := a.getScraperService()
	if err != nil {
		return err
	}

	if supplier == scraper.SupplierNone && utils.LooksLikeEbayStore(storeURL) {
		fmt.Fprintln(a.out, "💡 Pass --supplier amazon to match scraped titles against Amazon.")
	}

	ctx := context.Background()
	if timeout := a.scrapeTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	session := scraper.NewSession(svc, a.cfg.CLI.Locale)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		session.Cancel()
	}()

	fmt.Fprintf(a.out, "⏳ Scraping %s (up to %d pages)\n", storeURL, maxPages)
	logger.Log("scrape started: url=%s supplier=%q max_pages=%d", storeURL, supplier, maxPages)

	req := scraper.ScrapeRequest{StoreURL: storeURL, MaxPages: maxPages, Supplier: supplier}
	return a.runScrape(ctx, session, req)
}

func (a *App) runScrape(ctx context.Context, session *scraper.Session, req scraper.ScrapeRequest) error {
	var last string
	res, err := session.Run(ctx, scraper.MarketplaceEbay, req, func(p *scraper.ProgressState) {
		line := format.ProgressLine(p)
		if line == "" || line == last {
			return
		}
		last = line
		fmt.Fprintf(a.out, "\r%-72s", line)
	})
	if last != "" {
		fmt.Fprintln(a.out)
	}
	if err != nil {
		return err
	}

	logger.Log("scrape settled: platform=%s count=%d error=%q", res.Platform, res.Count, res.Error)
	return a.printResult(res)
}

func (a *App) printResult(res scraper.ScrapeResult) error {
	fmt.Fprintln(a.out)
	fmt.Fprint(a.out, format.ScrapeResultText(res))
	if res.Count == 0 && res.Error != "" {
		return ErrNoResults
	}
	return nil
}

// backendUnavailable adds guidance to connection failures
func backendUnavailable(baseURL string, err error) error {
	var scraperErr *scraper.ScraperError
	if errors.As(err, &scraperErr) && scraperErr.Type == scraper.ErrorTypeServiceUnavailable {
		return fmt.Errorf("%s\n\n"+
			"💡 Could not reach %s. Check the backend is running, or point the CLI elsewhere:\n"+
			"   dropflow --config-set cli.base_url=http://localhost:8080", scraperErr.UserMessage(), baseURL)
	}
	return fmt.Errorf("backend unhealthy: %s", scraper.UserMessage(err))
}
