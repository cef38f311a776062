package query

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nlenjibi/storefront/internal/domain/model"
)

// OrderFilter is a sparse filter over orders. Nil fields add no constraint.
type OrderFilter struct {
	UserID        *int64
	Status        *model.OrderStatus
	PaymentStatus *model.PaymentStatus
	Number        *string
	Search        *string
	MinTotal      *decimal.Decimal
	MaxTotal      *decimal.Decimal
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// Compile folds the populated fields into one condition. Every compiled
// filter is scoped to active (not soft-deleted) rows.
func (f OrderFilter) Compile() Condition {
	b := NewBuilder().Eq("is_active", true)
	if f.UserID != nil {
		b.Eq("user_id", *f.UserID)
	}
	if f.Status != nil {
		b.Eq("status", string(*f.Status))
	}
	if f.PaymentStatus != nil {
		b.Eq("payment_status", string(*f.PaymentStatus))
	}
	if f.Number != nil {
		b.Eq("number", *f.Number)
	}
	if f.Search != nil {
		pattern := likePattern(*f.Search)
		b.Raw("search", "(number ILIKE ? OR notes ILIKE ?)", pattern, pattern)
	}
	if f.MinTotal != nil {
		b.Gte("total", *f.MinTotal)
	}
	if f.MaxTotal != nil {
		b.Lte("total", *f.MaxTotal)
	}
	if f.CreatedFrom != nil {
		b.After("created_at", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		b.Before("created_at", *f.CreatedTo)
	}
	return b.Build()
}

// HighValueOrders matches active orders whose total reaches the threshold.
func HighValueOrders(threshold decimal.Decimal) Condition {
	return NewBuilder().
		Eq("is_active", true).
		Gte("total", threshold).
		Build()
}

// OverdueOrders matches orders stuck before fulfillment past the cutoff.
func OverdueOrders(cutoff time.Time) Condition {
	return NewBuilder().
		Eq("is_active", true).
		In("status", []string{string(model.OrderStatusPending), string(model.OrderStatusProcessing)}).
		Before("created_at", cutoff).
		Build()
}

// OrdersNeedingAttention matches orders in unhealthy terminal states.
func OrdersNeedingAttention() Condition {
	return NewBuilder().
		Eq("is_active", true).
		In("status", []string{string(model.OrderStatusFailed), string(model.OrderStatusCancelled)}).
		Build()
}

// ProductFilter is a sparse filter over catalog products.
type ProductFilter struct {
	Name       *string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    *bool
}

func (f ProductFilter) Compile() Condition {
	b := NewBuilder().Eq("is_active", true)
	if f.Name != nil {
		b.Contains("name", *f.Name)
	}
	if f.CategoryID != nil {
		b.Eq("category_id", *f.CategoryID)
	}
	if f.MinPrice != nil {
		b.Gte("price", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.Lte("price", *f.MaxPrice)
	}
	if f.InStock != nil {
		if *f.InStock {
			b.Raw("availability", "stock - reserved > 0")
		} else {
			b.Raw("availability", "stock - reserved <= 0")
		}
	}
	return b.Build()
}

// CategoryFilter is a sparse filter over categories.
type CategoryFilter struct {
	Name     *string
	ParentID *int64
}

func (f CategoryFilter) Compile() Condition {
	b := NewBuilder().Eq("is_active", true)
	if f.Name != nil {
		b.Contains("name", *f.Name)
	}
	if f.ParentID != nil {
		b.Eq("parent_id", *f.ParentID)
	}
	return b.Build()
}

// ReviewFilter is a sparse filter over product reviews.
type ReviewFilter struct {
	ProductID *int64
	UserID    *int64
	MinRating *int
	MaxRating *int
	Approved  *bool
}

func (f ReviewFilter) Compile() Condition {
	b := NewBuilder().Eq("is_active", true)
	if f.ProductID != nil {
		b.Eq("product_id", *f.ProductID)
	}
	if f.UserID != nil {
		b.Eq("user_id", *f.UserID)
	}
	if f.MinRating != nil {
		b.Gte("rating", *f.MinRating)
	}
	if f.MaxRating != nil {
		b.Lte("rating", *f.MaxRating)
	}
	if f.Approved != nil {
		b.Eq("approved", *f.Approved)
	}
	return b.Build()
}

// UserFilter is a sparse filter over registered users.
type UserFilter struct {
	Email       *string
	Role        *model.Role
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (f UserFilter) Compile() Condition {
	b := NewBuilder().Eq("is_active", true)
	if f.Email != nil {
		b.Contains("email", *f.Email)
	}
	if f.Role != nil {
		b.Eq("role", string(*f.Role))
	}
	if f.CreatedFrom != nil {
		b.After("created_at", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		b.Before("created_at", *f.CreatedTo)
	}
	return b.Build()
}
