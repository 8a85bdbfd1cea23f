package tui

import (
	"strings"
	"testing"

	"dropflow-go/pkg/models"

	"github.com/charmbracelet/lipgloss"
)

func TestBadgesKeepText(t *testing.T) {
	for _, s := range []string{models.SourceAmazon, models.SourceAliExpress, "eBay", "Walmart"} {
		if got := sourceBadge(s); !strings.Contains(got, s) {
			t.Errorf("sourceBadge(%q) = %q", s, got)
		}
	}
	for _, s := range []string{models.ProductActive, models.OrderCancelled, "Refunded"} {
		if got := statusBadge(s); !strings.Contains(got, s) {
			t.Errorf("statusBadge(%q) = %q", s, got)
		}
	}
}

func TestStatusColors(t *testing.T) {
	if statusColors[models.OrderDelivered] != colorGood || statusColors[models.OrderCancelled] != colorBad {
		t.Error("delivered and cancelled orders must use the good and bad colors")
	}
	if sourceColors["eBay"] != colorEbay {
		t.Error("eBay must have a badge color")
	}
}

func TestMatchRateStyle(t *testing.T) {
	tests := []struct {
		rate float64
		want lipgloss.TerminalColor
	}{
		{100, colorGood},
		{66, colorGood},
		{50, colorActive},
		{10, colorCaution},
	}
	for _, tt := range tests {
		if got := matchRateStyle(tt.rate).GetForeground(); got != tt.want {
			t.Errorf("matchRateStyle(%v) foreground = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
