package db

import (
	"context"
	"fmt"

	"dropflow-go/pkg/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, sku, source, price, cost, stock, status, image_url, source_url, created_at`

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.Source,
		&p.Price,
		&p.Cost,
		&p.Stock,
		&p.Status,
		&p.ImageURL,
		&p.SourceURL,
		&p.CreatedAt,
	)
}

// ListProducts retrieves all products, newest first
func (db *DB) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+productColumns+`
		 FROM products
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// CreateProduct inserts a new product
func (db *DB) CreateProduct(ctx context.Context, create models.ProductCreate) (*models.Product, error) {
	status := create.Status
	if status == "" {
		status = models.ProductActive
	}

	var created models.Product
	err := scanProduct(db.Pool.QueryRow(ctx,
		`INSERT INTO products (id, name, sku, source, price, cost, stock, status, image_url, source_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+productColumns,
		uuid.New(), create.Name, create.SKU, create.Source, create.Price, create.Cost,
		create.Stock, status, create.ImageURL, create.SourceURL,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &created, nil
}

// ListOrders retrieves all orders, newest first
func (db *DB) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date, customer, email, items, total, status, tracking
		 FROM orders
		 ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID,
			&o.Date,
			&o.Customer,
			&o.Email,
			&o.Items,
			&o.Total,
			&o.Status,
			&o.Tracking,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
