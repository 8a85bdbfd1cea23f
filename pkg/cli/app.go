package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"dropflow-go/pkg/cli/client"
	"dropflow-go/pkg/cli/logger"
	"dropflow-go/pkg/cli/tui"
	"dropflow-go/pkg/config"
	"dropflow-go/pkg/scraper"

	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	cfg     *config.Config
	client  *client.Client
	scraper *scraper.ScraperService
	out     io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
		out: os.Stdout,
	}
}

// getClient returns the catalog client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}

	a.client = client.NewClient(a.cfg.CLI.BaseURL, a.cfg.API.Token)
	return a.client, nil
}

// getScraperService returns the scrape backend client, creating it if necessary
func (a *App) getScraperService() (*scraper.ScraperService, error) {
	if a.scraper != nil {
		return a.scraper, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}

	a.scraper = scraper.NewScraperService(a.cfg.CLI.BaseURL, scraper.WithMatchRate(a.cfg.CLI.MatchRPS))
	return a.scraper, nil
}

func (a *App) scrapeTimeout() time.Duration {
	return time.Duration(a.cfg.CLI.ScrapeTimeout) * time.Second
}

// Run starts the interactive TUI.
func (a *App) Run() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	svc, err := a.getScraperService()
	if err != nil {
		return err
	}

	logger.Log("starting TUI: base_url=%s", a.cfg.CLI.BaseURL)
	root := tui.NewRootModel(svc, apiClient, tui.ScrapeOptions{
		MaxPages: a.cfg.CLI.MaxPages,
		Locale:   a.cfg.CLI.Locale,
		Timeout:  a.scrapeTimeout(),
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
