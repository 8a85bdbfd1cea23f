package services

import (
	"context"
	"fmt"
	"strings"

	"dropflow-go/pkg/models"
)

// CatalogStore is the persistence the catalog needs. *db.DB implements it.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, create models.ProductCreate) (*models.Product, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// CatalogService handles business logic for products and orders
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// ListProducts returns products matching every non-empty filter field.
// Query matches name or SKU, case-insensitively.
func (s *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !containsFold(p.Name, query) && (p.SKU == nil || !containsFold(*p.SKU, query)) {
			continue
		}
		if !matchesOption(filter.Source, p.Source) || !matchesOption(filter.Status, p.Status) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(ctx context.Context, create models.ProductCreate) (*models.Product, error) {
	if strings.TrimSpace(create.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	return s.store.CreateProduct(ctx, create)
}

// ListOrders returns orders whose ID, customer or email contain query,
// with counters computed over the unfiltered list.
func (s *CatalogService) ListOrders(ctx context.Context, query string) ([]models.Order, models.OrderStats, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, models.OrderStats{}, err
	}

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

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if query == "" || containsFold(o.ID, query) || containsFold(o.Customer, query) || containsFold(o.Email, query) {
			out = append(out, o)
		}
	}
	return out, stats, nil
}

// containsFold reports whether s contains the already-lowercased sub.
func containsFold(s, lowerSub string) bool {
	return strings.Contains(strings.ToLower(s), lowerSub)
}

// matchesOption treats "" and "all" as no filter.
func matchesOption(want, got string) bool {
	return want == "" || strings.EqualFold(want, "all") || want == got
}
