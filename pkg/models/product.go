package models

import (
	"time"

	"github.com/google/uuid"
)

// Product statuses shown in the catalog.
const (
	ProductActive   = "Active"
	ProductInactive = "Inactive"
)

// Product sources.
const (
	SourceAmazon     = "Amazon"
	SourceAliExpress = "AliExpress"
)

type Product struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SKU       *string   `db:"sku" json:"sku,omitempty"`
	Source    string    `db:"source" json:"source"`
	Price     float64   `db:"price" json:"price"`
	Cost      float64   `db:"cost" json:"cost"`
	Stock     int       `db:"stock" json:"stock"`
	Status    string    `db:"status" json:"status"`
	ImageURL  *string   `db:"image_url" json:"imageUrl,omitempty"`
	SourceURL *string   `db:"source_url" json:"sourceUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Margin is the per-unit profit.
func (p Product) Margin() float64 {
	return p.Price - p.Cost
}

// ProductCreate represents data for creating a new product
type ProductCreate struct {
	Name      string  `json:"name" binding:"required"`
	SKU       *string `json:"sku,omitempty"`
	Source    string  `json:"source" binding:"required,oneof=Amazon AliExpress"`
	Price     float64 `json:"price" binding:"gte=0"`
	Cost      float64 `json:"cost" binding:"gte=0"`
	Stock     int     `json:"stock" binding:"gte=0"`
	Status    string  `json:"status" binding:"omitempty,oneof=Active Inactive"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	SourceURL *string `json:"sourceUrl,omitempty" binding:"omitempty,url"`
}

// ProductFilter narrows a product listing. Empty fields match everything.
type ProductFilter struct {
	Query  string
	Source string
	Status string
}
