package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nlenjibi/storefront/internal/adapter/cache"
	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/domain/repository"
	"github.com/nlenjibi/storefront/internal/query"
)

// Cache buckets invalidated after every order mutation.
const (
	cacheBucketOrder      = "order"
	cacheBucketUserOrders = "user-orders"
	cacheBucketStats      = "order-stats"

	statsCacheKey = "summary"
)

// TransitionAction names a state-machine transition exposed to callers.
type TransitionAction string

const (
	ActionConfirm        TransitionAction = "confirm"
	ActionProcess        TransitionAction = "process"
	ActionShip           TransitionAction = "ship"
	ActionOutForDelivery TransitionAction = "out-for-delivery"
	ActionDeliver        TransitionAction = "deliver"
	ActionCancel         TransitionAction = "cancel"
	ActionRefund         TransitionAction = "refund"
	ActionMarkPaid       TransitionAction = "pay"
	ActionPaymentFailed  TransitionAction = "payment-failed"
)

// TransitionParams carries the per-action arguments.
type TransitionParams struct {
	TrackingNumber string
	Carrier        string
	Reason         string
	TransactionID  string
	Amount         decimal.Decimal
}

// Named admin views built on the predicate compiler shortcuts.
const (
	highValueThreshold = 500
	overdueAge         = 7 * 24 * time.Hour
)

// OrderUseCase orchestrates order reads and mutations: ownership checks, one
// transaction per mutating operation, totals recalculation through the
// domain methods, and derived-view invalidation afterwards.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		products: products,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func authorize(order *model.Order, caller Caller) error {
	if caller.IsAdmin() || order.UserID == caller.UserID {
		return nil
	}
	return domainErrors.ErrUnauthorized
}

// Get returns one order, served from the derived-view cache when possible.
// Ownership is checked after the load so cached entries stay shareable.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64, caller Caller) (*model.Order, error) {
	key := strconv.FormatInt(orderID, 10)
	if raw, ok, err := u.cache.Get(ctx, cacheBucketOrder, key); err == nil && ok {
		var order model.Order
		if err := json.Unmarshal([]byte(raw), &order); err == nil {
			if err := authorize(&order, caller); err != nil {
				return nil, err
			}
			return &order, nil
		}
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authorize(order, caller); err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(order); err == nil {
		if err := u.cache.Set(ctx, cacheBucketOrder, key, string(raw), u.cacheTTL); err != nil {
			u.logger.Error("cache order view", slog.String("error", err.Error()))
		}
	}
	return order, nil
}

// Query returns a filtered, paginated view. Non-admin callers are always
// scoped to their own orders regardless of the submitted filter.
func (u *OrderUseCase) Query(ctx context.Context, filter query.OrderFilter, page query.Page, caller Caller) (*query.Paged[model.Order], error) {
	if !caller.IsAdmin() {
		filter.UserID = &caller.UserID
	}

	page = page.Normalize()
	orders, total, err := u.orders.List(ctx, filter.Compile(), page)
	if err != nil {
		return nil, err
	}
	return &query.Paged[model.Order]{Items: orders, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// View serves the named admin shortcuts (high-value, overdue,
// needs-attention) over the same paged query path.
func (u *OrderUseCase) View(ctx context.Context, view string, page query.Page, caller Caller) (*query.Paged[model.Order], error) {
	if !caller.IsAdmin() {
		return nil, domainErrors.ErrUnauthorized
	}

	var cond query.Condition
	switch view {
	case "high-value":
		cond = query.HighValueOrders(decimal.NewFromInt(highValueThreshold))
	case "overdue":
		cond = query.OverdueOrders(u.now().Add(-overdueAge))
	case "needs-attention":
		cond = query.OrdersNeedingAttention()
	default:
		return nil, domainErrors.ErrInvalidArgument
	}

	page = page.Normalize()
	orders, total, err := u.orders.List(ctx, cond, page)
	if err != nil {
		return nil, err
	}
	return &query.Paged[model.Order]{Items: orders, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// Transition applies one named state-machine action inside a single
// transaction. The ownership check runs under the same row lock, so a losing
// concurrent caller observes the committed state and fails its guard.
func (u *OrderUseCase) Transition(ctx context.Context, orderID int64, action TransitionAction, params TransitionParams, caller Caller) (*model.Order, error) {
	order, err := u.orders.Mutate(ctx, orderID, func(o *model.Order) error {
		if err := authorize(o, caller); err != nil {
			return err
		}
		return u.apply(o, action, params)
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, order.ID, order.UserID)
	return order, nil
}

func (u *OrderUseCase) apply(o *model.Order, action TransitionAction, params TransitionParams) error {
	now := u.now()
	switch action {
	case ActionConfirm:
		return o.Confirm()
	case ActionProcess:
		return o.Process()
	case ActionShip:
		if params.TrackingNumber == "" || params.Carrier == "" {
			return domainErrors.ErrInvalidArgument
		}
		return o.Ship(params.TrackingNumber, params.Carrier, now)
	case ActionOutForDelivery:
		return o.OutForDelivery()
	case ActionDeliver:
		return o.Deliver(now)
	case ActionCancel:
		return o.Cancel(params.Reason, now)
	case ActionRefund:
		return o.Refund(params.Amount, params.Reason, now)
	case ActionMarkPaid:
		return o.MarkAsPaid(params.TransactionID, now)
	case ActionPaymentFailed:
		return o.MarkPaymentFailed()
	default:
		return domainErrors.ErrInvalidArgument
	}
}

// AddItem appends a product to a PENDING order, snapshotting the current
// catalog name and price for the new line.
func (u *OrderUseCase) AddItem(ctx context.Context, orderID, productID int64, quantity int, caller Caller) (*model.Order, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Mutate(ctx, orderID, func(o *model.Order) error {
		if err := authorize(o, caller); err != nil {
			return err
		}
		return o.AddItem(product.ID, product.Name, quantity, product.Price, decimal.Zero)
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, order.ID, order.UserID)
	return order, nil
}

// UpdateItemQuantity changes a line quantity on a PENDING order.
func (u *OrderUseCase) UpdateItemQuantity(ctx context.Context, orderID, productID int64, quantity int, caller Caller) (*model.Order, error) {
	order, err := u.orders.Mutate(ctx, orderID, func(o *model.Order) error {
		if err := authorize(o, caller); err != nil {
			return err
		}
		return o.UpdateItemQuantity(productID, quantity)
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, order.ID, order.UserID)
	return order, nil
}

// RemoveItem drops a line from a PENDING order.
func (u *OrderUseCase) RemoveItem(ctx context.Context, orderID, productID int64, caller Caller) (*model.Order, error) {
	order, err := u.orders.Mutate(ctx, orderID, func(o *model.Order) error {
		if err := authorize(o, caller); err != nil {
			return err
		}
		return o.RemoveItem(productID)
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, order.ID, order.UserID)
	return order, nil
}

// Delete soft-deletes an order; the row is kept inactive, never removed.
func (u *OrderUseCase) Delete(ctx context.Context, orderID int64, caller Caller) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := authorize(order, caller); err != nil {
		return err
	}

	if err := u.orders.SoftDelete(ctx, orderID); err != nil {
		return err
	}

	u.invalidate(ctx, order.ID, order.UserID)
	return nil
}

// Stats returns the cached aggregate view, recomputing it on a miss.
func (u *OrderUseCase) Stats(ctx context.Context, caller Caller) (*model.OrderStats, error) {
	if !caller.IsAdmin() {
		return nil, domainErrors.ErrUnauthorized
	}

	if raw, ok, err := u.cache.Get(ctx, cacheBucketStats, statsCacheKey); err == nil && ok {
		var stats model.OrderStats
		if err := json.Unmarshal([]byte(raw), &stats); err == nil {
			return &stats, nil
		}
	}

	return u.RefreshStats(ctx)
}

// RefreshStats recomputes order statistics and repopulates the stats bucket.
// The background worker calls it on a fixed cadence.
func (u *OrderUseCase) RefreshStats(ctx context.Context) (*model.OrderStats, error) {
	stats, err := u.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := u.cache.Set(ctx, cacheBucketStats, statsCacheKey, string(raw), u.cacheTTL); err != nil {
			u.logger.Error("cache stats view", slog.String("error", err.Error()))
		}
	}
	return stats, nil
}

func (u *OrderUseCase) invalidate(ctx context.Context, orderID, userID int64) {
	evictions := []struct {
		bucket string
		key    string
	}{
		{cacheBucketOrder, strconv.FormatInt(orderID, 10)},
		{cacheBucketUserOrders, fmt.Sprintf("%d", userID)},
		{cacheBucketStats, statsCacheKey},
	}
	for _, e := range evictions {
		if err := u.cache.Evict(ctx, e.bucket, e.key); err != nil {
			u.logger.Error("evict derived view",
				slog.String("bucket", e.bucket), slog.String("key", e.key), slog.String("error", err.Error()))
		}
	}
}
