package tui

import (
	"fmt"
	"strings"

	"dropflow-go/pkg/cli/format"
	"dropflow-go/pkg/models"
	"dropflow-go/pkg/scraper"
	"dropflow-go/pkg/utils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// backToMenuMsg asks the root model to drop the active flow.
type backToMenuMsg struct{}

func backToMenu() tea.Msg { return backToMenuMsg{} }

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press m for the menu or any other key to exit...") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n\n" +
		helpStyle.Render("Press m for the menu or any other key to exit...") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// renderResult renders a settled scrape or import. An error with nothing
// scraped replaces the result card; otherwise the error is shown below it.
func renderResult(res scraper.ScrapeResult) string {
	var b strings.Builder

	if res.Error != "" && res.Count == 0 {
		b.WriteString(renderError(res.Error))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderSuccess(format.ResultHeadline(res)))
	b.WriteString("\n\n")

	preview, more := format.TitlePreview(res.Titles)
	for _, t := range preview {
		b.WriteString("  " + titleItemStyle.Render(utils.TruncateText(t, 72)) + "\n")
	}
	if more > 0 {
		b.WriteString("  " + mutedStyle.Render(fmt.Sprintf("...and %d more", more)) + "\n")
	}

	if line := format.MatchRateLine(res); line != "" && res.MatchRate != nil {
		b.WriteString("\n" + matchRateStyle(*res.MatchRate).Render(line) + "\n")
	}
	if res.Error != "" {
		b.WriteString("\n" + renderWarning(res.Error) + "\n")
	}
	return b.String()
}

// renderProductList renders a selectable list of products with navigation markers
func renderProductList(products []models.Product, selected int) string {
	var b strings.Builder
	for i, p := range products {
		marker := " "
		nameStyle := productNameStyle
		if i == selected {
			marker = selectedMarkerStyle.Render("→")
			nameStyle = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s %s\n", marker, nameStyle.Render(utils.TruncateText(p.Name, 60))))
		meta := productMetaStyle.Render(fmt.Sprintf("%s · stock %d", format.Money(p.Price), p.Stock))
		b.WriteString(fmt.Sprintf("  %s · %s · %s\n", sourceBadge(p.Source), statusBadge(p.Status), meta))
	}
	return b.String()
}

// renderProductDetails renders the fields of one product
func renderProductDetails(p models.Product) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fieldLabelStyle.Render(label))
		b.WriteString(" " + value + "\n")
	}

	field("ID:", format.ShortenID(p.ID))
	field("Name:", p.Name)
	if p.SKU != nil && *p.SKU != "" {
		field("SKU:", *p.SKU)
	}
	field("Source:", sourceBadge(p.Source))
	field("Price:", format.Money(p.Price))
	field("Cost:", format.Money(p.Cost))

	margin := format.Money(p.Margin())
	if p.Margin() < 0 {
		margin = lipgloss.NewStyle().Foreground(colorBad).Render(margin)
	}
	field("Margin:", margin)
	field("Stock:", fmt.Sprintf("%d", p.Stock))
	field("Status:", statusBadge(p.Status))
	if p.SourceURL != nil && *p.SourceURL != "" {
		field("Source URL:", mutedStyle.Render(*p.SourceURL))
	}
	field("Created:", format.FormatDate(p.CreatedAt))
	return b.String()
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// handleQuitKeys checks if a key should quit the current view
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}

// cycle returns the option after current, wrapping around.
func cycle(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
