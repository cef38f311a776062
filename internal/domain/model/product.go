package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with its stock-keeping record. Reserved counts
// stock held by in-flight checkouts that has not been deducted yet.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
	Stock       int
	Reserved    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available returns stock not held by any reservation.
func (p *Product) Available() int {
	return p.Stock - p.Reserved
}

// Category groups products for browsing and reporting.
type Category struct {
	ID        int64
	Name      string
	ParentID  *int64
	Active    bool
	CreatedAt time.Time
}

// Review is a customer rating attached to a product.
type Review struct {
	ID        int64
	ProductID int64
	UserID    int64
	Rating    int
	Comment   string
	Approved  bool
	Active    bool
	CreatedAt time.Time
}
