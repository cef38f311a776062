package repository

import (
	"context"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

// ProductRepository describes catalog lookups and the inventory guard.
// Reserve, Deduct and Release are conditional atomic updates; they never
// read-modify-write at the application layer.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Product, int64, error)
	// Reserve holds qty units if available stock covers it, otherwise
	// returns InsufficientStockError.
	Reserve(ctx context.Context, productID int64, qty int) error
	// Deduct permanently removes qty from stock and drops up to qty from the
	// reservation counter.
	Deduct(ctx context.Context, productID int64, qty int) error
	// Release returns qty units of reservation, floored at zero.
	Release(ctx context.Context, productID int64, qty int) error
}
