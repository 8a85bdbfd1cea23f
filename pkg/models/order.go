package models

import "time"

// Order statuses.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Order IDs are storefront order numbers such as "ORD-001".
type Order struct {
	ID       string    `db:"id" json:"id"`
	Date     time.Time `db:"date" json:"date"`
	Customer string    `db:"customer" json:"customer"`
	Email    string    `db:"email" json:"email"`
	Items    int       `db:"items" json:"items"`
	Total    float64   `db:"total" json:"total"`
	Status   string    `db:"status" json:"status"`
	Tracking *string   `db:"tracking" json:"tracking,omitempty"`
}

// OrderStats are the counters shown above the order list.
type OrderStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
}
