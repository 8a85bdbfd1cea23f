package client

import (
	"context"
	"net/http"
	"net/url"

	"dropflow-go/pkg/models"
)

// ListProducts retrieves products, filtered server-side
func (c *Client) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.Source != "" {
		q.Set("source", filter.Source)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}

	var resp struct {
		Items []models.Product `json:"items"`
	}
	if err := c.get(ctx, "/api/products", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateProduct adds a product to the catalog
func (c *Client) CreateProduct(ctx context.Context, create models.ProductCreate) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", create, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListOrders retrieves orders and their status counters. When the server
// omits stats they are counted from the returned orders.
func (c *Client) ListOrders(ctx context.Context, query string) ([]models.Order, models.OrderStats, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}

	var resp struct {
		Items []models.Order     `json:"items"`
		Stats *models.OrderStats `json:"stats"`
	}
	if err := c.get(ctx, "/api/orders", q, &resp); err != nil {
		return nil, models.OrderStats{}, err
	}
	if resp.Stats == nil {
		return resp.Items, statsFor(resp.Items), nil
	}
	return resp.Items, *resp.Stats, nil
}

func statsFor(orders []models.Order) models.OrderStats {
	stats := models.OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending:
			stats.Pending++
		case models.OrderProcessing:
			stats.Processing++
		case models.OrderShipped:
			stats.Shipped++
		}
	}
	return stats
}
