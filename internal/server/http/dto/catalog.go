package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse is the public catalog representation of a product.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id,omitempty"`
	Available   int             `json:"available"`
}

// CategoryResponse is the public representation of a category.
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id,omitempty"`
}

// ReviewResponse is the public representation of a product review.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsResponse is the admin order statistics view.
type StatsResponse struct {
	TotalOrders int64            `json:"total_orders"`
	ByStatus    map[string]int64 `json:"by_status"`
	Revenue     decimal.Decimal  `json:"revenue"`
}
