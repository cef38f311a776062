package repository

import (
	"context"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

// CategoryRepository describes category browse queries.
type CategoryRepository interface {
	List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Category, int64, error)
}

// ReviewRepository describes review browse queries.
type ReviewRepository interface {
	List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Review, int64, error)
}
