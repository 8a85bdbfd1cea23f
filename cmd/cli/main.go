package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"dropflow-go/pkg/cli"
	"dropflow-go/pkg/cli/logger"
	"dropflow-go/pkg/config"
	"dropflow-go/pkg/models"
)

func main() {
	var (
		scrapeURL = flag.String("scrape", "", "Scrape an eBay store URL and print the titles found")
		supplier  = flag.String("supplier", "", "Supplier the store sources from: amazon or aliexpress")
		maxPages  = flag.Int("max-pages", 0, "Maximum store pages to scrape (default from config)")
		importURL = flag.String("import", "", "Import a single Amazon or AliExpress product URL")
		health    = flag.Bool("health", false, "Check that the DropFlow backend is reachable")

		// Catalog commands
		products = flag.Bool("products", false, "List catalog products")
		source   = flag.String("source", "", "Filter products by source (Amazon, AliExpress)")
		status   = flag.String("status", "", "Filter products by status (Active, Inactive)")
		orders   = flag.Bool("orders", false, "List orders")
		query    = flag.String("q", "", "Search products by name/SKU or orders by customer/email/ID")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Dir, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logger.CloseLog()

	app := cli.NewApp(cfg)

	// Handle config commands first (don't need the backend)
	if *configShow {
		app.ShowConfig()
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			exit(fmt.Errorf("failed to set config: %w", err))
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	switch {
	case *health:
		exit(app.HandleHealthCommand())
	case *scrapeURL != "":
		exit(app.HandleScrapeCommand(*scrapeURL, *supplier, *maxPages))
	case *importURL != "":
		exit(app.HandleImportCommand(*importURL))
	case *products:
		exit(app.ListProducts(models.ProductFilter{Query: *query, Source: *source, Status: *status}))
	case *orders:
		exit(app.ListOrders(*query))
	default:
		// Interactive TUI mode
		exit(app.Run())
	}
}

// exit terminates with status 1 on error. Results that were already
// printed are not repeated.
func exit(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, cli.ErrNoResults) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	logger.CloseLog()
	os.Exit(1)
}
