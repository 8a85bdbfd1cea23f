package tui

import (
	"strings"

	"dropflow-go/pkg/models"
	"dropflow-go/pkg/scraper"

	"github.com/charmbracelet/lipgloss"
)

// DropFlow palette. Sources and statuses keep the same hue everywhere they
// appear so a product's origin is recognisable at a glance.
var (
	colorAccent  = lipgloss.Color("33")  // DropFlow blue
	colorText    = lipgloss.Color("252") // Near white
	colorSubtle  = lipgloss.Color("244") // Gray
	colorMuted   = lipgloss.Color("240") // Dark gray
	colorRule    = lipgloss.Color("238") // Divider gray
	colorGood    = lipgloss.Color("42")  // Green
	colorBad     = lipgloss.Color("196") // Red
	colorCaution = lipgloss.Color("214") // Amber
	colorActive  = lipgloss.Color("39")  // Cyan

	colorAmazon     = lipgloss.Color("208") // Amazon orange
	colorAliExpress = lipgloss.Color("160") // AliExpress red
	colorEbay       = lipgloss.Color("27")  // eBay blue
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	boldStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorCaution)
	infoStyle    = lipgloss.NewStyle().Foreground(colorActive)

	// Scraped titles and catalog rows
	titleItemStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	productNameStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	productMetaStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			MarginRight(2)

	selectedStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedMarkerStyle = selectedStyle
	dividerStyle        = lipgloss.NewStyle().Foreground(colorRule)

	badgeStyle = lipgloss.NewStyle().Bold(true)
)

// sourceColors maps a marketplace label to its badge color.
var sourceColors = map[string]lipgloss.Color{
	models.SourceAmazon:            colorAmazon,
	models.SourceAliExpress:        colorAliExpress,
	scraper.MarketplaceEbay.Label(): colorEbay,
}

// statusColors covers both product and order statuses.
var statusColors = map[string]lipgloss.Color{
	models.ProductActive:   colorGood,
	models.ProductInactive: colorMuted,
	models.OrderPending:    colorCaution,
	models.OrderProcessing: colorActive,
	models.OrderShipped:    colorAccent,
	models.OrderDelivered:  colorGood,
	models.OrderCancelled:  colorBad,
}

// sourceBadge renders a marketplace name in its brand color.
func sourceBadge(source string) string {
	c, ok := sourceColors[source]
	if !ok {
		return source
	}
	return badgeStyle.Foreground(c).Render(source)
}

// statusBadge renders a product or order status in its state color.
func statusBadge(status string) string {
	c, ok := statusColors[status]
	if !ok {
		return status
	}
	return lipgloss.NewStyle().Foreground(c).Render(status)
}

// matchRateStyle grades a supplier match rate: most titles found is good,
// under a third needs attention.
func matchRateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 66:
		return successStyle
	case rate >= 33:
		return infoStyle
	default:
		return warningStyle
	}
}

func renderTitle(title string) string {
	return "\n" + titleStyle.Render(title) + "\n"
}

func renderSuccess(msg string) string {
	return successStyle.Render("✓ " + msg)
}

func renderError(msg string) string {
	return errorStyle.Render("❌ " + msg)
}

func renderWarning(msg string) string {
	return warningStyle.Render("⚠ " + msg)
}

func renderDivider(length int) string {
	return dividerStyle.Render(strings.Repeat("─", length))
}
