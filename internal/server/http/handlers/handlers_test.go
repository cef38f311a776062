package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/server/http/dto"
	"github.com/nlenjibi/storefront/internal/server/http/middleware"
	"github.com/nlenjibi/storefront/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFacadeStub struct {
	registerFn     func(ctx context.Context, email, name, password string) (*model.User, string, error)
	authenticateFn func(ctx context.Context, email, password string) (*model.User, string, error)
}

func (s authFacadeStub) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	if s.registerFn == nil {
		return &model.User{ID: 1, Email: email, Name: name, Role: model.RoleCustomer}, "session-token", nil
	}
	return s.registerFn(ctx, email, name, password)
}

func (s authFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.authenticateFn == nil {
		return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "session-token", nil
	}
	return s.authenticateFn(ctx, email, password)
}

func (authFacadeStub) ParseToken(string) (usecase.Caller, error) {
	return usecase.Caller{}, nil
}

type checkoutFacadeStub struct {
	checkoutFn func(ctx context.Context, cartID uuid.UUID, userID int64, overrides usecase.CheckoutOverrides) (*model.Order, error)
}

func (s checkoutFacadeStub) Checkout(ctx context.Context, cartID uuid.UUID, userID int64, overrides usecase.CheckoutOverrides) (*model.Order, error) {
	return s.checkoutFn(ctx, cartID, userID, overrides)
}

type orderFacadeStub struct {
	orderFn      func(ctx context.Context, orderID int64, caller usecase.Caller) (*model.Order, error)
	ordersFn     func(ctx context.Context, filter query.OrderFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error)
	viewFn       func(ctx context.Context, view string, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error)
	transitionFn func(ctx context.Context, orderID int64, action usecase.TransitionAction, params usecase.TransitionParams, caller usecase.Caller) (*model.Order, error)
	statsFn      func(ctx context.Context, caller usecase.Caller) (*model.OrderStats, error)
}

func (s orderFacadeStub) Order(ctx context.Context, orderID int64, caller usecase.Caller) (*model.Order, error) {
	return s.orderFn(ctx, orderID, caller)
}

func (s orderFacadeStub) Orders(ctx context.Context, filter query.OrderFilter, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error) {
	return s.ordersFn(ctx, filter, page, caller)
}

func (s orderFacadeStub) OrderView(ctx context.Context, view string, page query.Page, caller usecase.Caller) (*query.Paged[model.Order], error) {
	return s.viewFn(ctx, view, page, caller)
}

func (s orderFacadeStub) Transition(ctx context.Context, orderID int64, action usecase.TransitionAction, params usecase.TransitionParams, caller usecase.Caller) (*model.Order, error) {
	return s.transitionFn(ctx, orderID, action, params, caller)
}

func (orderFacadeStub) AddOrderItem(context.Context, int64, int64, int, usecase.Caller) (*model.Order, error) {
	panic("not implemented")
}

func (orderFacadeStub) UpdateOrderItem(context.Context, int64, int64, int, usecase.Caller) (*model.Order, error) {
	panic("not implemented")
}

func (orderFacadeStub) RemoveOrderItem(context.Context, int64, int64, usecase.Caller) (*model.Order, error) {
	panic("not implemented")
}

func (orderFacadeStub) DeleteOrder(context.Context, int64, usecase.Caller) error {
	panic("not implemented")
}

func (s orderFacadeStub) OrderStats(ctx context.Context, caller usecase.Caller) (*model.OrderStats, error) {
	return s.statsFn(ctx, caller)
}

func performRequest(t *testing.T, method, path, target string, handler gin.HandlerFunc, caller *usecase.Caller, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.CallerContextKey, *caller)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCurrentCaller(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentCaller(c); got.UserID != 0 {
		t.Fatalf("expected zero caller when not set, got %+v", got)
	}

	c.Set(middleware.CallerContextKey, usecase.Caller{UserID: 42, Role: model.RoleAdmin})
	if got := CurrentCaller(c); got.UserID != 42 || !got.IsAdmin() {
		t.Fatalf("caller = %+v", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "shopper@example.com", Name: "Shopper", Password: "long-enough"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(authFacadeStub{}).Register, nil, body)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("authorization header = %q", got)
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "storefront_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected storefront_token cookie")
	}

	var user dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if user.Email != "shopper@example.com" || user.Role != "customer" {
		t.Fatalf("user = %+v", user)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", domainErrors.ErrInvalidArgument, http.StatusBadRequest},
		{"duplicate email", domainErrors.ErrAlreadyExists, http.StatusConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(authFacadeStub{
				registerFn: func(context.Context, string, string, string) (*model.User, string, error) {
					return nil, "", tc.err
				},
			})
			body, _ := json.Marshal(dto.RegisterRequest{Email: "x@example.com", Password: "long-enough"})
			resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body)
			if resp.Code != tc.status {
				t.Fatalf("status = %d, want %d", resp.Code, tc.status)
			}
		})
	}
}

func TestAuthHandlerLoginRejectsBadCredentials(t *testing.T) {
	handler := NewAuthHandler(authFacadeStub{
		authenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", domainErrors.ErrInvalidCredentials
		},
	})
	body, _ := json.Marshal(dto.LoginRequest{Email: "x@example.com", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestCheckoutHandlerCreate(t *testing.T) {
	cartID := uuid.New()
	caller := usecase.Caller{UserID: 7, Role: model.RoleCustomer}
	handler := NewCheckoutHandler(checkoutFacadeStub{
		checkoutFn: func(_ context.Context, gotCart uuid.UUID, userID int64, overrides usecase.CheckoutOverrides) (*model.Order, error) {
			if gotCart != cartID || userID != 7 {
				t.Fatalf("checkout called with cart %s user %d", gotCart, userID)
			}
			if overrides.PaymentMethod != "card" {
				t.Fatalf("overrides = %+v", overrides)
			}
			return &model.Order{ID: 100, Number: "ORD-20260829-000001", UserID: 7, Status: model.OrderStatusPending}, nil
		},
	})

	body, _ := json.Marshal(dto.CheckoutRequest{CartID: cartID.String(), PaymentMethod: "card"})
	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", handler.Create, &caller, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", resp.Code, resp.Body.String())
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if order.Number != "ORD-20260829-000001" {
		t.Fatalf("order = %+v", order)
	}
}

func TestCheckoutHandlerRejectsMalformedCartID(t *testing.T) {
	caller := usecase.Caller{UserID: 7}
	handler := NewCheckoutHandler(checkoutFacadeStub{
		checkoutFn: func(context.Context, uuid.UUID, int64, usecase.CheckoutOverrides) (*model.Order, error) {
			t.Fatal("facade must not be called")
			return nil, nil
		},
	})
	body, _ := json.Marshal(dto.CheckoutRequest{CartID: "not-a-uuid"})
	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", handler.Create, &caller, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestCheckoutHandlerMapsStockConflict(t *testing.T) {
	caller := usecase.Caller{UserID: 7}
	handler := NewCheckoutHandler(checkoutFacadeStub{
		checkoutFn: func(context.Context, uuid.UUID, int64, usecase.CheckoutOverrides) (*model.Order, error) {
			return nil, &domainErrors.InsufficientStockError{ProductID: 2, Requested: 3, Available: 1}
		},
	})
	body, _ := json.Marshal(dto.CheckoutRequest{CartID: uuid.New().String()})
	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", handler.Create, &caller, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	caller := usecase.Caller{UserID: 7, Role: model.RoleCustomer}
	handler := NewOrderHandler(orderFacadeStub{
		orderFn: func(_ context.Context, orderID int64, got usecase.Caller) (*model.Order, error) {
			if orderID != 5 || got.UserID != 7 {
				t.Fatalf("order %d caller %+v", orderID, got)
			}
			return &model.Order{ID: 5, Number: "ORD-20260829-000001", UserID: 7, Status: model.OrderStatusConfirmed, Total: decimal.RequireFromString("27.50")}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", handler.Get, &caller, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if order.Status != "CONFIRMED" || !order.Total.Equal(decimal.RequireFromString("27.50")) {
		t.Fatalf("order = %+v", order)
	}
}

func TestOrderHandlerGetErrors(t *testing.T) {
	caller := usecase.Caller{UserID: 7}

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/abc", NewOrderHandler(orderFacadeStub{}).Get, &caller, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: status = %d, want 400", resp.Code)
	}

	handler := NewOrderHandler(orderFacadeStub{
		orderFn: func(context.Context, int64, usecase.Caller) (*model.Order, error) {
			return nil, domainErrors.ErrUnauthorized
		},
	})
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", handler.Get, &caller, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("foreign order: status = %d, want 403", resp.Code)
	}
}

func TestOrderHandlerListParsesFilter(t *testing.T) {
	caller := usecase.Caller{UserID: 7, Role: model.RoleCustomer}
	handler := NewOrderHandler(orderFacadeStub{
		ordersFn: func(_ context.Context, filter query.OrderFilter, page query.Page, _ usecase.Caller) (*query.Paged[model.Order], error) {
			if filter.Status == nil || *filter.Status != model.OrderStatusPending {
				t.Fatalf("filter = %+v", filter)
			}
			if filter.MinTotal == nil || !filter.MinTotal.Equal(decimal.RequireFromString("100")) {
				t.Fatalf("min total = %v", filter.MinTotal)
			}
			if page.Limit != 5 || page.Offset != 10 {
				t.Fatalf("page = %+v", page)
			}
			return &query.Paged[model.Order]{Limit: 5, Offset: 10}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=PENDING&min_total=100&limit=5&offset=10", handler.List, &caller, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
}

func TestOrderHandlerTransitionBindsParams(t *testing.T) {
	caller := usecase.Caller{UserID: 1, Role: model.RoleAdmin}
	handler := NewOrderHandler(orderFacadeStub{
		transitionFn: func(_ context.Context, orderID int64, action usecase.TransitionAction, params usecase.TransitionParams, _ usecase.Caller) (*model.Order, error) {
			if orderID != 5 || action != usecase.ActionShip {
				t.Fatalf("order %d action %s", orderID, action)
			}
			if params.TrackingNumber != "TRK-9" || params.Carrier != "DHL" {
				t.Fatalf("params = %+v", params)
			}
			return &model.Order{ID: 5, Status: model.OrderStatusShipped}, nil
		},
	})

	body, _ := json.Marshal(dto.TransitionRequest{TrackingNumber: "TRK-9", Carrier: "DHL"})
	resp := performRequest(t, http.MethodPost, "/orders/:id/ship", "/orders/5/ship", handler.Transition(usecase.ActionShip), &caller, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", resp.Code, resp.Body.String())
	}
}

func TestOrderHandlerTransitionInvalidState(t *testing.T) {
	caller := usecase.Caller{UserID: 7}
	handler := NewOrderHandler(orderFacadeStub{
		transitionFn: func(context.Context, int64, usecase.TransitionAction, usecase.TransitionParams, usecase.Caller) (*model.Order, error) {
			return nil, &domainErrors.InvalidTransitionError{From: string(model.OrderStatusDelivered), To: string(model.OrderStatusShipped)}
		},
	})

	resp := performRequest(t, http.MethodPost, "/orders/:id/ship", "/orders/5/ship", handler.Transition(usecase.ActionShip), &caller, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.Code)
	}
}

func TestAdminHandlerStats(t *testing.T) {
	caller := usecase.Caller{UserID: 1, Role: model.RoleAdmin}
	handler := NewAdminHandler(orderFacadeStub{
		statsFn: func(context.Context, usecase.Caller) (*model.OrderStats, error) {
			return &model.OrderStats{
				TotalOrders: 5,
				ByStatus:    map[model.OrderStatus]int64{model.OrderStatusPending: 2},
				Revenue:     decimal.RequireFromString("120.50"),
			}, nil
		},
	}, nil)

	resp := performRequest(t, http.MethodGet, "/admin/stats", "/admin/stats", handler.Stats, &caller, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var stats dto.StatsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if stats.TotalOrders != 5 || stats.ByStatus["PENDING"] != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAdminHandlerOrdersSelectsNamedView(t *testing.T) {
	caller := usecase.Caller{UserID: 1, Role: model.RoleAdmin}
	handler := NewAdminHandler(orderFacadeStub{
		viewFn: func(_ context.Context, view string, _ query.Page, _ usecase.Caller) (*query.Paged[model.Order], error) {
			if view != "overdue" {
				t.Fatalf("view = %q", view)
			}
			return &query.Paged[model.Order]{}, nil
		},
	}, nil)

	resp := performRequest(t, http.MethodGet, "/admin/orders", "/admin/orders?view=overdue", handler.Orders, &caller, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
}
