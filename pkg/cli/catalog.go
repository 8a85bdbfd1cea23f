package cli

import (
	"context"
	"fmt"
	"time"

	"dropflow-go/pkg/cli/client"
	"dropflow-go/pkg/cli/format"
	"dropflow-go/pkg/models"
)

// ListProducts prints the catalog as a table
func (a *App) ListProducts(filter models.ProductFilter) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := apiClient.ListProducts(ctx, filter)
	if err != nil {
		return catalogError("products", err)
	}

	fmt.Fprint(a.out, format.ProductsTable(products))
	return nil
}

// ListOrders prints orders matching query with the status counters
func (a *App) ListOrders(query string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orders, stats, err := apiClient.ListOrders(ctx, query)
	if err != nil {
		return catalogError("orders", err)
	}

	fmt.Fprint(a.out, format.OrdersTable(orders, stats))
	return nil
}

// catalogError wraps a catalog failure, pointing at api.token when the
// server rejected it.
func catalogError(what string, err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("error fetching %s: %w\nSet a token with: --config-set api.token=<token>", what, err)
	}
	return fmt.Errorf("error fetching %s: %w", what, err)
}
