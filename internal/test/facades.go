package test

import (
	"context"

	"github.com/google/uuid"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// StoreFacadeStub provides controllable behaviour for the full application
// surface. Unset functions return benign defaults.
type StoreFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn   func(string) (usecase.Caller, error)
	CheckoutFn     func(context.Context, uuid.UUID, int64, usecase.CheckoutOverrides) (*model.Order, error)
	OrderFn        func(context.Context, int64, usecase.Caller) (*model.Order, error)
	OrdersFn       func(context.Context, query.OrderFilter, query.Page, usecase.Caller) (*query.Paged[model.Order], error)
	OrderViewFn    func(context.Context, string, query.Page, usecase.Caller) (*query.Paged[model.Order], error)
	TransitionFn   func(context.Context, int64, usecase.TransitionAction, usecase.TransitionParams, usecase.Caller) (*model.Order, error)
	AddItemFn      func(context.Context, int64, int64, int, usecase.Caller) (*model.Order, error)
	UpdateItemFn   func(context.Context, int64, int64, int, usecase.Caller) (*model.Order, error)
	RemoveItemFn   func(context.Context, int64, int64, usecase.Caller) (*model.Order, error)
	DeleteOrderFn  func(context.Context, int64, usecase.Caller) error
	OrderStatsFn   func(context.Context, usecase.Caller) (*model.OrderStats, error)
	RefreshStatsFn func(context.Context) error
	ProductFn      func(context.Context, int64) (*model.Product, error)
	ProductsFn     func(context.Context, query.ProductFilter, query.Page) (*query.Paged[model.Product], error)
	CategoriesFn   func(context.Context, query.CategoryFilter, query.Page) (*query.Paged[model.Category], error)
	ReviewsFn      func(context.Context, query.ReviewFilter, query.Page) (*query.Paged[model.Review], error)
	UsersFn        func(context.Context, query.UserFilter, query.Page, usecase.Caller) (*query.Paged[model.User], error)
}

func (s *StoreFacadeStub) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, name, password)
	}
	return &model.User{ID: 1, Email: email, Name: name, Role: model.RoleCustomer}, "token", nil
}

func (s *StoreFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

func (s *StoreFacadeStub) ParseToken(token string) (usecase.Caller, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return usecase.Caller{UserID: 1, Role: model.RoleCustomer}, nil
}

func (s *StoreFacadeStub) Checkout(ctx context.Context, cartID uuid.UUID, userID int64, overrides usecase.CheckoutOverrides) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, cartID, userID, overrides)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s *StoreFacadeStub) Order(ctx context.Context, orderID int64, caller usecase.Caller) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, caller)
	}
	return &model.Order{ID: orderID, UserID: caller.UserID}, nil
}

func (s *StoreFacadeStub) Orders(ctx context.Context, filter query.OrderFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter, page, caller)
	}
	return &query.Paged[model.Order]{}, nil
}

func (s *StoreFacadeStub) OrderView(ctx context.Context, view string, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error) {
	if s.OrderViewFn != nil {
		return s.OrderViewFn(ctx, view, page, caller)
	}
	return &query.Paged[model.Order]{}, nil
}

func (s *StoreFacadeStub) Transition(ctx context.Context, orderID int64, action usecase.TransitionAction, params usecase.TransitionParams, caller usecase.Caller) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, action, params, caller)
	}
	return &model.Order{ID: orderID}, nil
}

func (s *StoreFacadeStub) AddOrderItem(ctx context.Context, orderID, productID int64, quantity int, caller usecase.Caller) (*model.Order, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, orderID, productID, quantity, caller)
	}
	return &model.Order{ID: orderID}, nil
}

func (s *StoreFacadeStub) UpdateOrderItem(ctx context.Context, orderID, productID int64, quantity int, caller usecase.Caller) (*model.Order, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, orderID, productID, quantity, caller)
	}
	return &model.Order{ID: orderID}, nil
}

func (s *StoreFacadeStub) RemoveOrderItem(ctx context.Context, orderID, productID int64, caller usecase.Caller) (*model.Order, error) {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, orderID, productID, caller)
	}
	return &model.Order{ID: orderID}, nil
}

func (s *StoreFacadeStub) DeleteOrder(ctx context.Context, orderID int64, caller usecase.Caller) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, orderID, caller)
	}
	return nil
}

func (s *StoreFacadeStub) OrderStats(ctx context.Context, caller usecase.Caller) (*model.OrderStats, error) {
	if s.OrderStatsFn != nil {
		return s.OrderStatsFn(ctx, caller)
	}
	return &model.OrderStats{ByStatus: map[model.OrderStatus]int64{}}, nil
}

func (s *StoreFacadeStub) RefreshOrderStats(ctx context.Context) error {
	if s.RefreshStatsFn != nil {
		return s.RefreshStatsFn(ctx)
	}
	return nil
}

func (s *StoreFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "widget", Active: true}, nil
}

func (s *StoreFacadeStub) Products(ctx context.Context, filter query.ProductFilter, page query.Page) (*query.Paged[model.Product], error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter, page)
	}
	return &query.Paged[model.Product]{}, nil
}

func (s *StoreFacadeStub) Categories(ctx context.Context, filter query.CategoryFilter, page query.Page) (*query.Paged[model.Category], error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx, filter, page)
	}
	return &query.Paged[model.Category]{}, nil
}

func (s *StoreFacadeStub) Reviews(ctx context.Context, filter query.ReviewFilter, page query.Page) (*query.Paged[model.Review], error) {
	if s.ReviewsFn != nil {
		return s.ReviewsFn(ctx, filter, page)
	}
	return &query.Paged[model.Review]{}, nil
}

func (s *StoreFacadeStub) Users(ctx context.Context, filter query.UserFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.User], error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, filter, page, caller)
	}
	return &query.Paged[model.User]{}, nil
}
