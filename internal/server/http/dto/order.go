package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemResponse is one order line.
type OrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse is the public order representation.
type OrderResponse struct {
	ID             int64               `json:"id"`
	Number         string              `json:"number"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	CouponDiscount decimal.Decimal     `json:"coupon_discount"`
	Total          decimal.Decimal     `json:"total"`
	RefundAmount   decimal.Decimal     `json:"refund_amount"`

	ShippingAddress string `json:"shipping_address,omitempty"`
	ShippingMethod  string `json:"shipping_method,omitempty"`
	TrackingNumber  string `json:"tracking_number,omitempty"`
	Carrier         string `json:"carrier,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// PagedResponse wraps one page of results with the unpaged total.
type PagedResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// TransitionRequest carries per-action arguments for order transitions.
type TransitionRequest struct {
	TrackingNumber string           `json:"tracking_number,omitempty"`
	Carrier        string           `json:"carrier,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	TransactionID  string           `json:"transaction_id,omitempty"`
}

// OrderItemRequest adds or updates one order line.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
