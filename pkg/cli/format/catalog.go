package format

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"dropflow-go/pkg/models"
	"dropflow-go/pkg/utils"

	"github.com/google/uuid"
)

// ShortenID returns the first 8 characters of a UUID
func ShortenID(id uuid.UUID) string {
	return id.String()[:8]
}

// FormatDate formats a time as a readable date string
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Money formats a dollar amount
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// ProductsTable formats products as a table for CLI output
func ProductsTable(products []models.Product) string {
	if len(products) == 0 {
		return "No products found.\n"
	}

	var b strings.Builder
	b.WriteString("\nProducts\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tSKU\tSource\tPrice\tCost\tMargin\tStock\tStatus")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			ShortenID(p.ID),
			utils.TruncateText(p.Name, 40),
			orDash(p.SKU),
			p.Source,
			Money(p.Price),
			Money(p.Cost),
			Money(p.Margin()),
			p.Stock,
			p.Status,
		)
	}
	w.Flush()

	fmt.Fprintf(&b, "\nTotal: %d product(s)\n", len(products))
	return b.String()
}

// OrdersTable formats orders and their counters for CLI output
func OrdersTable(orders []models.Order, stats models.OrderStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nOrders  total %d · pending %d · processing %d · shipped %d\n\n",
		stats.Total, stats.Pending, stats.Processing, stats.Shipped)

	if len(orders) == 0 {
		b.WriteString("No orders found.\n")
		return b.String()
	}

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDate\tCustomer\tItems\tTotal\tStatus\tTracking")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID,
			FormatDate(o.Date),
			utils.TruncateText(o.Customer, 30),
			o.Items,
			Money(o.Total),
			o.Status,
			orDash(o.Tracking),
		)
	}
	w.Flush()
	return b.String()
}
