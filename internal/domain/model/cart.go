package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one cart line. UnitPrice is the price computed by the cart
// layer at the time the line was added; checkout copies it verbatim instead
// of re-reading the live product price.
type CartItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Cart is supplied by the cart collaborator and consumed by checkout.
type Cart struct {
	ID             uuid.UUID
	UserID         int64
	Items          []CartItem
	CouponCode     string
	CouponDiscount decimal.Decimal
}

// IsEmpty reports whether the cart has no purchasable lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
