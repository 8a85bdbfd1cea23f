package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for root menu
func RootMenuHelpContent() string {
	items := []HelpItem{
		{"1-3", "Select menu option (Scrape store / Import product / Products)"},
		{"q / Esc", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// ScrapeStoreHelpContent returns help for the store scrape flow
func ScrapeStoreHelpContent() string {
	items := []HelpItem{
		{"Enter", "Start scraping (URL) / Choose supplier"},
		{"Tab", "Change supplier"},
		{"1 / 2", "Amazon / AliExpress (supplier step)"},
		{"Esc", "Stop scraping and keep what was found"},
		{"r", "Scrape another store (result)"},
		{"m", "Return to menu"},
		{"Ctrl+C", "Force quit"},
	}
	return renderHelpItems(items)
}

// ProductsHelpContent returns help for the product list
func ProductsHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate product list"},
		{"Enter", "Show details"},
		{"s", "Cycle source filter"},
		{"t", "Cycle status filter"},
		{"r", "Refresh"},
		{"m", "Return to menu"},
		{"q", "Quit"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	for _, item := range items {
		keyStyle := boldStyle.Foreground(colorAccent)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
