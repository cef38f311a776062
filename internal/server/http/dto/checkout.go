package dto

import "github.com/shopspring/decimal"

// CheckoutRequest starts a checkout from an existing cart.
type CheckoutRequest struct {
	CartID          string           `json:"cart_id"`
	ShippingAddress string           `json:"shipping_address,omitempty"`
	ShippingMethod  string           `json:"shipping_method,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost,omitempty"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
}
