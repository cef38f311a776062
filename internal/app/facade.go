package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// StoreFacade is the application surface consumed by the HTTP layer and the
// background worker. It delegates to the use cases without adding behavior.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	catalog  *usecase.CatalogUseCase
}

// NewStoreFacade constructs the facade over the application use cases.
func NewStoreFacade(
	auth *usecase.AuthUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	catalog *usecase.CatalogUseCase,
) *StoreFacade {
	return &StoreFacade{auth: auth, checkout: checkout, orders: orders, catalog: catalog}
}

func (f *StoreFacade) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, name, password)
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) ParseToken(token string) (usecase.Caller, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Checkout(ctx context.Context, cartID uuid.UUID, userID int64, overrides usecase.CheckoutOverrides) (*model.Order, error) {
	return f.checkout.CreateFromCart(ctx, cartID, userID, overrides)
}

func (f *StoreFacade) Order(ctx context.Context, orderID int64, caller usecase.Caller) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, caller)
}

func (f *StoreFacade) Orders(ctx context.Context, filter query.OrderFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error) {
	return f.orders.Query(ctx, filter, page, caller)
}

func (f *StoreFacade) OrderView(ctx context.Context, view string, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error) {
	return f.orders.View(ctx, view, page, caller)
}

func (f *StoreFacade) Transition(ctx context.Context, orderID int64, action usecase.TransitionAction, params usecase.TransitionParams, caller usecase.Caller) (*model.Order, error) {
	return f.orders.Transition(ctx, orderID, action, params, caller)
}

func (f *StoreFacade) AddOrderItem(ctx context.Context, orderID, productID int64, quantity int, caller usecase.Caller) (*model.Order, error) {
	return f.orders.AddItem(ctx, orderID, productID, quantity, caller)
}

func (f *StoreFacade) UpdateOrderItem(ctx context.Context, orderID, productID int64, quantity int, caller usecase.Caller) (*model.Order, error) {
	return f.orders.UpdateItemQuantity(ctx, orderID, productID, quantity, caller)
}

func (f *StoreFacade) RemoveOrderItem(ctx context.Context, orderID, productID int64, caller usecase.Caller) (*model.Order, error) {
	return f.orders.RemoveItem(ctx, orderID, productID, caller)
}

func (f *StoreFacade) DeleteOrder(ctx context.Context, orderID int64, caller usecase.Caller) error {
	return f.orders.Delete(ctx, orderID, caller)
}

func (f *StoreFacade) OrderStats(ctx context.Context, caller usecase.Caller) (*model.OrderStats, error) {
	return f.orders.Stats(ctx, caller)
}

// RefreshOrderStats recomputes the cached statistics view; the background
// worker calls it on a fixed cadence.
func (f *StoreFacade) RefreshOrderStats(ctx context.Context) error {
	_, err := f.orders.RefreshStats(ctx)
	return err
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context, filter query.ProductFilter, page query.Page) (*query.Paged[model.Product], error) {
	return f.catalog.Products(ctx, filter, page)
}

func (f *StoreFacade) Categories(ctx context.Context, filter query.CategoryFilter, page query.Page) (*query.Paged[model.Category], error) {
	return f.catalog.Categories(ctx, filter, page)
}

func (f *StoreFacade) Reviews(ctx context.Context, filter query.ReviewFilter, page query.Page) (*query.Paged[model.Review], error) {
	return f.catalog.Reviews(ctx, filter, page)
}

func (f *StoreFacade) Users(ctx context.Context, filter query.UserFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.User], error) {
	return f.catalog.Users(ctx, filter, page, caller)
}
