package model

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
)

// OrderStatus describes the fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusRefunded       OrderStatus = "REFUNDED"
	OrderStatusFailed         OrderStatus = "FAILED"
)

// PaymentStatus tracks the payment side channel.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "PENDING"
	PaymentStatusPaid              PaymentStatus = "PAID"
	PaymentStatusFailed            PaymentStatus = "FAILED"
	PaymentStatusRefunded          PaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// statusTransitions lists which target statuses each status may move to
// through the named transition methods.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusConfirmed:      {OrderStatusProcessing, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusProcessing:     {OrderStatusShipped, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusShipped:        {OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusRefunded},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {OrderStatusRefunded},
}

// OrderItem is a line entry owned by exactly one order. ProductName is
// captured at creation so later product renames do not rewrite history.
type OrderItem struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Order is the aggregate root for a purchase. Items is an ordered slice, not
// a set: freshly built lines have no identity yet and must not collapse.
type Order struct {
	ID            int64
	Number        string
	UserID        int64
	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod string
	TransactionID string

	Items []OrderItem

	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	CouponCode     string
	CouponDiscount decimal.Decimal
	Total          decimal.Decimal
	RefundAmount   decimal.Decimal

	ShippingAddress     string
	ShippingMethod      string
	TrackingNumber      string
	Carrier             string
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	EstimatedDeliveryAt *time.Time

	CancelReason string
	RefundReason string
	Notes        string

	CancelledAt *time.Time
	RefundedAt  *time.Time
	PaidAt      *time.Time

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) canTransition(to OrderStatus) bool {
	for _, allowed := range statusTransitions[o.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (o *Order) transition(to OrderStatus) error {
	if !o.canTransition(to) {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(to)}
	}
	o.Status = to
	return nil
}

// Confirm moves a PENDING order to CONFIRMED.
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusConfirmed)}
	}
	return o.transition(OrderStatusConfirmed)
}

// Process moves a CONFIRMED order to PROCESSING.
func (o *Order) Process() error {
	if o.Status != OrderStatusConfirmed {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusProcessing)}
	}
	return o.transition(OrderStatusProcessing)
}

// Ship moves a PROCESSING order to SHIPPED and records tracking details.
func (o *Order) Ship(trackingNumber, carrier string, now time.Time) error {
	if o.Status != OrderStatusProcessing {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusShipped)}
	}
	if err := o.transition(OrderStatusShipped); err != nil {
		return err
	}
	o.TrackingNumber = trackingNumber
	o.Carrier = carrier
	shipped := now
	o.ShippedAt = &shipped
	return nil
}

// OutForDelivery moves a SHIPPED order to OUT_FOR_DELIVERY.
func (o *Order) OutForDelivery() error {
	if o.Status != OrderStatusShipped {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusOutForDelivery)}
	}
	return o.transition(OrderStatusOutForDelivery)
}

// Deliver completes fulfillment from SHIPPED or OUT_FOR_DELIVERY.
func (o *Order) Deliver(now time.Time) error {
	if o.Status != OrderStatusShipped && o.Status != OrderStatusOutForDelivery {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusDelivered)}
	}
	if err := o.transition(OrderStatusDelivered); err != nil {
		return err
	}
	delivered := now
	o.DeliveredAt = &delivered
	return nil
}

// Cancel aborts an order that has not shipped yet.
func (o *Order) Cancel(reason string, now time.Time) error {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
	default:
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusCancelled)}
	}
	if err := o.transition(OrderStatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	cancelled := now
	o.CancelledAt = &cancelled
	return nil
}

// Refund records a refund on a SHIPPED or DELIVERED paid order. A refund
// covering the full total moves the order to REFUNDED and the payment status
// to REFUNDED; anything less marks the payment PARTIALLY_REFUNDED and leaves
// the fulfillment status alone.
func (o *Order) Refund(amount decimal.Decimal, reason string, now time.Time) error {
	if o.Status != OrderStatusShipped && o.Status != OrderStatusDelivered {
		return &domainErrors.InvalidTransitionError{From: string(o.Status), To: string(OrderStatusRefunded)}
	}
	if o.PaymentStatus != PaymentStatusPaid {
		return &domainErrors.InvalidTransitionError{From: string(o.PaymentStatus), To: string(PaymentStatusRefunded)}
	}
	if !amount.IsPositive() {
		return domainErrors.ErrInvalidArgument
	}

	if amount.GreaterThanOrEqual(o.Total) {
		if err := o.transition(OrderStatusRefunded); err != nil {
			return err
		}
		o.PaymentStatus = PaymentStatusRefunded
	} else {
		o.PaymentStatus = PaymentStatusPartiallyRefunded
	}

	o.RefundAmount = amount
	o.RefundReason = reason
	refunded := now
	o.RefundedAt = &refunded
	return nil
}

// MarkAsPaid records a successful payment. It is a payment-side channel and
// does not advance the fulfillment status.
func (o *Order) MarkAsPaid(transactionID string, now time.Time) error {
	if o.PaymentStatus == PaymentStatusPaid {
		return domainErrors.ErrInvalidState
	}
	o.PaymentStatus = PaymentStatusPaid
	o.TransactionID = transactionID
	paid := now
	o.PaidAt = &paid
	return nil
}

// MarkPaymentFailed records a failed payment and forces the order to FAILED.
func (o *Order) MarkPaymentFailed() error {
	if o.PaymentStatus == PaymentStatusPaid {
		return domainErrors.ErrInvalidState
	}
	o.PaymentStatus = PaymentStatusFailed
	o.Status = OrderStatusFailed
	return nil
}

// AddItem appends a line (or bumps the quantity of an existing line for the
// same product) and recalculates totals. Allowed only while PENDING.
func (o *Order) AddItem(productID int64, productName string, quantity int, unitPrice, discount decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return domainErrors.ErrInvalidState
	}
	if quantity <= 0 {
		return domainErrors.ErrInvalidArgument
	}

	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items[i].Quantity += quantity
			o.Items[i].TotalPrice = LineTotal(o.Items[i].UnitPrice, o.Items[i].Quantity, o.Items[i].Discount)
			o.RecalculateTotals()
			return nil
		}
	}

	o.Items = append(o.Items, OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
		TotalPrice:  LineTotal(unitPrice, quantity, discount),
	})
	o.RecalculateTotals()
	return nil
}

// RemoveItem drops the line for the given product. Allowed only while PENDING.
func (o *Order) RemoveItem(productID int64) error {
	if o.Status != OrderStatusPending {
		return domainErrors.ErrInvalidState
	}
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.RecalculateTotals()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// UpdateItemQuantity changes a line quantity. Allowed only while PENDING.
func (o *Order) UpdateItemQuantity(productID int64, quantity int) error {
	if o.Status != OrderStatusPending {
		return domainErrors.ErrInvalidState
	}
	if quantity <= 0 {
		return domainErrors.ErrInvalidArgument
	}
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			o.Items[i].Quantity = quantity
			o.Items[i].TotalPrice = LineTotal(o.Items[i].UnitPrice, o.Items[i].Quantity, o.Items[i].Discount)
			o.RecalculateTotals()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// RecalculateTotals recomputes the monetary summary from the current items.
func (o *Order) RecalculateTotals() {
	totals := CalculateTotals(o.Items, o.TaxRate, o.ShippingCost, o.DiscountAmount, o.CouponDiscount)
	o.Subtotal = totals.Subtotal
	o.TaxAmount = totals.TaxAmount
	o.Total = totals.Total
}
