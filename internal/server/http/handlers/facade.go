package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (usecase.Caller, error)
}

// CheckoutFacade converts carts into orders.
type CheckoutFacade interface {
	Checkout(ctx context.Context, cartID uuid.UUID, userID int64, overrides usecase.CheckoutOverrides) (*model.Order, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Order(ctx context.Context, orderID int64, caller usecase.Caller) (*model.Order, error)
	Orders(ctx context.Context, filter query.OrderFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error)
	OrderView(ctx context.Context, view string, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error)
	Transition(ctx context.Context, orderID int64, action usecase.TransitionAction, params usecase.TransitionParams, caller usecase.Caller) (*model.Order, error)
	AddOrderItem(ctx context.Context, orderID, productID int64, quantity int, caller usecase.Caller) (*model.Order, error)
	UpdateOrderItem(ctx context.Context, orderID, productID int64, quantity int, caller usecase.Caller) (*model.Order, error)
	RemoveOrderItem(ctx context.Context, orderID, productID int64, caller usecase.Caller) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID int64, caller usecase.Caller) error
	OrderStats(ctx context.Context, caller usecase.Caller) (*model.OrderStats, error)
}

// CatalogFacade provides catalog and account reads.
type CatalogFacade interface {
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context, filter query.ProductFilter, page query.Page) (*query.Paged[model.Product], error)
	Categories(ctx context.Context, filter query.CategoryFilter, page query.Page) (*query.Paged[model.Category], error)
	Reviews(ctx context.Context, filter query.ReviewFilter, page query.Page) (*query.Paged[model.Review], error)
	Users(ctx context.Context, filter query.UserFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.User], error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CheckoutFacade
	OrderFacade
	CatalogFacade
}
