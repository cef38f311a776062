package repository

import (
	"context"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

// UserRepository describes persistence operations with user accounts.
type UserRepository interface {
	Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, cond query.Condition, page query.Page) ([]model.User, int64, error)
}
