package repository

import (
	"context"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

// OrderRepository describes persistence operations for order aggregates.
type OrderRepository interface {
	// Create persists a new order with its items. A duplicate order number
	// returns ErrAlreadyExists so callers can regenerate and retry.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	// Mutate loads the order under a row lock inside one transaction, applies
	// fn to it, and persists the result. Concurrent mutations of the same
	// order serialize on the lock; the loser observes the committed state.
	Mutate(ctx context.Context, id int64, fn func(*model.Order) error) (*model.Order, error)
	List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Order, int64, error)
	SoftDelete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.OrderStats, error)
}
