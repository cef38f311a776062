package usecase

import (
	"context"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/domain/repository"
	"github.com/nlenjibi/storefront/internal/query"
)

// CatalogUseCase serves read-only filtered views of catalog entities. All
// filters go through the predicate compiler.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	users      repository.UserRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories, reviews: reviews, users: users}
}

func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

func (u *CatalogUseCase) Products(ctx context.Context, filter query.ProductFilter, page query.Page) (*query.Paged[model.Product], error) {
	page = page.Normalize()
	items, total, err := u.products.List(ctx, filter.Compile(), page)
	if err != nil {
		return nil, err
	}
	return &query.Paged[model.Product]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (u *CatalogUseCase) Categories(ctx context.Context, filter query.CategoryFilter, page query.Page) (*query.Paged[model.Category], error) {
	page = page.Normalize()
	items, total, err := u.categories.List(ctx, filter.Compile(), page)
	if err != nil {
		return nil, err
	}
	return &query.Paged[model.Category]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (u *CatalogUseCase) Reviews(ctx context.Context, filter query.ReviewFilter, page query.Page) (*query.Paged[model.Review], error) {
	page = page.Normalize()
	items, total, err := u.reviews.List(ctx, filter.Compile(), page)
	if err != nil {
		return nil, err
	}
	return &query.Paged[model.Review]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// Users lists accounts for the admin surface only.
func (u *CatalogUseCase) Users(ctx context.Context, filter query.UserFilter, page query.Page, caller Caller) (*query.Paged[model.User], error) {
	if !caller.IsAdmin() {
		return nil, domainErrors.ErrUnauthorized
	}
	page = page.Normalize()
	items, total, err := u.users.List(ctx, filter.Compile(), page)
	if err != nil {
		return nil, err
	}
	return &query.Paged[model.User]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}
