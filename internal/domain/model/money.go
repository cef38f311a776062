package model

import "github.com/shopspring/decimal"

// Totals holds the monetary summary derived from an order's line items.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineTotal computes unitPrice*quantity-discount, floored at zero.
func LineTotal(unitPrice decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// CalculateTotals derives subtotal, tax and grand total from line items.
// Tax is subtotal*rate/100 rounded half-up to 2 decimal places. The grand
// total is floored at zero. Callers must re-invoke it after every mutation
// that touches items, prices, rates or discounts; nothing keeps the numbers
// in sync automatically.
func CalculateTotals(items []OrderItem, taxRate, shippingCost, discount, couponDiscount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}

	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)

	total := subtotal.Add(tax).Add(shippingCost).Sub(discount).Sub(couponDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{Subtotal: subtotal, TaxAmount: tax, Total: total}
}
