package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nlenjibi/storefront/internal/adapter/cache"
	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

// mutatingOrders backs Mutate with an in-memory order the way the real
// repository does: load, apply, persist only when the callback succeeds.
func mutatingOrders(order *model.Order) stubOrderRepository {
	return stubOrderRepository{
		getFn: func(context.Context, int64) (*model.Order, error) {
			copied := *order
			return &copied, nil
		},
		mutateFn: func(_ context.Context, id int64, fn func(*model.Order) error) (*model.Order, error) {
			if id != order.ID {
				return nil, domainErrors.ErrNotFound
			}
			copied := *order
			copied.Items = append([]model.OrderItem(nil), order.Items...)
			if err := fn(&copied); err != nil {
				return nil, err
			}
			*order = copied
			return &copied, nil
		},
	}
}

func newOrderUC(orders stubOrderRepository, products stubProductRepository, c cache.Cache) *OrderUseCase {
	u := NewOrderUseCase(orders, products, c, time.Minute, testLogger())
	u.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return u
}

func confirmedOrder(id, userID int64) *model.Order {
	return &model.Order{
		ID:     id,
		UserID: userID,
		Number: "ORD-20260829-000001",
		Status: model.OrderStatusConfirmed,
		Items: []model.OrderItem{
			{ID: 1, ProductID: 1, ProductName: "widget", Quantity: 2, UnitPrice: dec("10.00"), TotalPrice: dec("20.00")},
		},
		Subtotal: dec("20.00"),
		Total:    dec("20.00"),
		Active:   true,
	}
}

func TestTransitionAdvancesStatusAndInvalidatesViews(t *testing.T) {
	order := confirmedOrder(5, 7)
	c := cache.NewMemory()
	ctx := context.Background()

	// stale derived views that a successful mutation must drop
	_ = c.Set(ctx, cacheBucketOrder, "5", "stale", time.Minute)
	_ = c.Set(ctx, cacheBucketUserOrders, "7", "stale", time.Minute)
	_ = c.Set(ctx, cacheBucketStats, statsCacheKey, "stale", time.Minute)

	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, c)
	updated, err := u.Transition(ctx, 5, ActionProcess, TransitionParams{}, Caller{UserID: 7, Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if updated.Status != model.OrderStatusProcessing {
		t.Fatalf("status = %s, want %s", updated.Status, model.OrderStatusProcessing)
	}
	if order.Status != model.OrderStatusProcessing {
		t.Fatal("mutation was not persisted")
	}

	for _, e := range []struct{ bucket, key string }{
		{cacheBucketOrder, "5"},
		{cacheBucketUserOrders, "7"},
		{cacheBucketStats, statsCacheKey},
	} {
		if _, ok, _ := c.Get(ctx, e.bucket, e.key); ok {
			t.Fatalf("bucket %s key %s not evicted", e.bucket, e.key)
		}
	}
}

func TestTransitionRejectsForeignCaller(t *testing.T) {
	order := confirmedOrder(5, 7)
	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())

	_, err := u.Transition(context.Background(), 5, ActionProcess, TransitionParams{}, Caller{UserID: 8, Role: model.RoleCustomer})
	if !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatal("rejected transition must not persist")
	}
}

func TestTransitionAllowsAdminOnAnyOrder(t *testing.T) {
	order := confirmedOrder(5, 7)
	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())

	updated, err := u.Transition(context.Background(), 5, ActionCancel, TransitionParams{Reason: "fraud"}, Caller{UserID: 1, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if updated.Status != model.OrderStatusCancelled || updated.CancelReason != "fraud" {
		t.Fatalf("order = %+v", updated)
	}
}

func TestTransitionShipRequiresTrackingDetails(t *testing.T) {
	order := confirmedOrder(5, 7)
	order.Status = model.OrderStatusProcessing
	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())
	caller := Caller{UserID: 1, Role: model.RoleAdmin}

	_, err := u.Transition(context.Background(), 5, ActionShip, TransitionParams{Carrier: "DHL"}, caller)
	if !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("missing tracking number: %v", err)
	}

	updated, err := u.Transition(context.Background(), 5, ActionShip, TransitionParams{TrackingNumber: "TRK-1", Carrier: "DHL"}, caller)
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if updated.Status != model.OrderStatusShipped || updated.TrackingNumber != "TRK-1" {
		t.Fatalf("order = %+v", updated)
	}
}

func TestTransitionIllegalJumpSurfacesDetails(t *testing.T) {
	order := confirmedOrder(5, 7)
	order.Status = model.OrderStatusPending
	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())

	_, err := u.Transition(context.Background(), 5, ActionDeliver, TransitionParams{}, Caller{UserID: 7, Role: model.RoleCustomer})
	if !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	var transErr *domainErrors.InvalidTransitionError
	if !errors.As(err, &transErr) || transErr.From != string(model.OrderStatusPending) {
		t.Fatalf("expected transition details, got %v", err)
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	order := confirmedOrder(5, 7)
	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())

	_, err := u.Transition(context.Background(), 5, TransitionAction("teleport"), TransitionParams{}, Caller{UserID: 7})
	if !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestGetCachesAndChecksOwnershipOnCachedEntries(t *testing.T) {
	order := confirmedOrder(5, 7)
	loads := 0
	orders := stubOrderRepository{
		getFn: func(context.Context, int64) (*model.Order, error) {
			loads++
			copied := *order
			return &copied, nil
		},
	}
	c := cache.NewMemory()
	u := newOrderUC(orders, stubProductRepository{}, c)
	ctx := context.Background()
	owner := Caller{UserID: 7, Role: model.RoleCustomer}

	for i := 0; i < 3; i++ {
		got, err := u.Get(ctx, 5, owner)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if got.Number != order.Number {
			t.Fatalf("get %d returned %+v", i, got)
		}
	}
	if loads != 1 {
		t.Fatalf("repository loads = %d, want 1", loads)
	}

	// ownership is re-checked even when the entry comes from the cache
	if _, err := u.Get(ctx, 5, Caller{UserID: 8, Role: model.RoleCustomer}); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for cached entry, got %v", err)
	}
}

func TestQueryScopesNonAdminToOwnOrders(t *testing.T) {
	var seen query.Condition
	orders := stubOrderRepository{
		listFn: func(_ context.Context, cond query.Condition, _ query.Page) ([]model.Order, int64, error) {
			seen = cond
			return nil, 0, nil
		},
	}
	u := newOrderUC(orders, stubProductRepository{}, cache.NewMemory())

	otherUser := int64(99)
	filter := query.OrderFilter{UserID: &otherUser}
	if _, err := u.Query(context.Background(), filter, query.Page{}, Caller{UserID: 7, Role: model.RoleCustomer}); err != nil {
		t.Fatalf("query: %v", err)
	}

	sql, args := seen.SQL(1)
	if !strings.Contains(sql, "user_id = $") {
		t.Fatalf("condition %q does not scope by user", sql)
	}
	found := false
	for _, a := range args {
		if v, ok := a.(int64); ok && v == 7 {
			found = true
		}
	}
	if !found {
		t.Fatalf("caller id not bound, args = %v", args)
	}
}

func TestQueryAdminKeepsSubmittedFilter(t *testing.T) {
	var seen query.Condition
	orders := stubOrderRepository{
		listFn: func(_ context.Context, cond query.Condition, _ query.Page) ([]model.Order, int64, error) {
			seen = cond
			return []model.Order{*confirmedOrder(5, 99)}, 1, nil
		},
	}
	u := newOrderUC(orders, stubProductRepository{}, cache.NewMemory())

	otherUser := int64(99)
	paged, err := u.Query(context.Background(), query.OrderFilter{UserID: &otherUser}, query.Page{}, Caller{UserID: 1, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if paged.Total != 1 || paged.Limit != 20 {
		t.Fatalf("paged = %+v", paged)
	}

	_, args := seen.SQL(1)
	for _, a := range args {
		if v, ok := a.(int64); ok && v != 99 {
			t.Fatalf("admin filter rewritten, args = %v", args)
		}
	}
}

func TestViewIsAdminOnly(t *testing.T) {
	u := newOrderUC(stubOrderRepository{}, stubProductRepository{}, cache.NewMemory())

	if _, err := u.View(context.Background(), "overdue", query.Page{}, Caller{UserID: 7, Role: model.RoleCustomer}); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestViewUnknownName(t *testing.T) {
	u := newOrderUC(stubOrderRepository{}, stubProductRepository{}, cache.NewMemory())

	if _, err := u.View(context.Background(), "suspicious", query.Page{}, Caller{UserID: 1, Role: model.RoleAdmin}); !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestViewOverdueUsesAgeCutoff(t *testing.T) {
	var seen query.Condition
	orders := stubOrderRepository{
		listFn: func(_ context.Context, cond query.Condition, _ query.Page) ([]model.Order, int64, error) {
			seen = cond
			return nil, 0, nil
		},
	}
	u := newOrderUC(orders, stubProductRepository{}, cache.NewMemory())

	if _, err := u.View(context.Background(), "overdue", query.Page{}, Caller{UserID: 1, Role: model.RoleAdmin}); err != nil {
		t.Fatalf("view: %v", err)
	}

	_, args := seen.SQL(1)
	want := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)
	found := false
	for _, a := range args {
		if v, ok := a.(time.Time); ok && v.Equal(want) {
			found = true
		}
	}
	if !found {
		t.Fatalf("cutoff %v not bound, args = %v", want, args)
	}
}

func TestAddItemSnapshotsCatalogPrice(t *testing.T) {
	order := confirmedOrder(5, 7)
	order.Status = model.OrderStatusPending
	products := stubProductRepository{
		getFn: func(_ context.Context, id int64) (*model.Product, error) {
			return &model.Product{ID: id, Name: "gadget", Price: dec("3.50"), Active: true}, nil
		},
	}
	u := newOrderUC(mutatingOrders(order), products, cache.NewMemory())

	updated, err := u.AddItem(context.Background(), 5, 2, 2, Caller{UserID: 7, Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("items = %+v", updated.Items)
	}
	line := updated.Items[1]
	if line.ProductName != "gadget" || !line.UnitPrice.Equal(dec("3.50")) || !line.TotalPrice.Equal(dec("7.00")) {
		t.Fatalf("line = %+v", line)
	}
	if !updated.Total.Equal(dec("27.00")) {
		t.Fatalf("total = %s, want 27.00", updated.Total)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	u := newOrderUC(stubOrderRepository{}, stubProductRepository{}, cache.NewMemory())

	if _, err := u.AddItem(context.Background(), 5, 2, 0, Caller{UserID: 7}); !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestItemMutationsRequirePendingOrder(t *testing.T) {
	order := confirmedOrder(5, 7)
	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())
	caller := Caller{UserID: 7, Role: model.RoleCustomer}

	if _, err := u.UpdateItemQuantity(context.Background(), 5, 1, 3, caller); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("update on confirmed order: %v", err)
	}
	if _, err := u.RemoveItem(context.Background(), 5, 1, caller); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("remove on confirmed order: %v", err)
	}
}

func TestRemoveItemRecalculatesTotals(t *testing.T) {
	order := confirmedOrder(5, 7)
	order.Status = model.OrderStatusPending
	order.Items = append(order.Items, model.OrderItem{
		ID: 2, ProductID: 2, ProductName: "gadget", Quantity: 1, UnitPrice: dec("5.00"), TotalPrice: dec("5.00"),
	})
	order.RecalculateTotals()

	u := newOrderUC(mutatingOrders(order), stubProductRepository{}, cache.NewMemory())
	updated, err := u.RemoveItem(context.Background(), 5, 2, Caller{UserID: 7, Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(updated.Items) != 1 || !updated.Total.Equal(dec("20.00")) {
		t.Fatalf("order = %+v", updated)
	}
}

func TestDeleteChecksOwnershipBeforeSoftDelete(t *testing.T) {
	order := confirmedOrder(5, 7)
	deleted := false
	orders := mutatingOrders(order)
	orders.softDeleteFn = func(context.Context, int64) error {
		deleted = true
		return nil
	}
	u := newOrderUC(orders, stubProductRepository{}, cache.NewMemory())

	if err := u.Delete(context.Background(), 5, Caller{UserID: 8, Role: model.RoleCustomer}); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if deleted {
		t.Fatal("soft delete ran for a foreign caller")
	}

	if err := u.Delete(context.Background(), 5, Caller{UserID: 7, Role: model.RoleCustomer}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("soft delete did not run for the owner")
	}
}

func TestStatsAdminOnlyAndCached(t *testing.T) {
	computes := 0
	orders := stubOrderRepository{
		statsFn: func(context.Context) (*model.OrderStats, error) {
			computes++
			return &model.OrderStats{
				TotalOrders: 3,
				ByStatus:    map[model.OrderStatus]int64{model.OrderStatusPending: 1, model.OrderStatusDelivered: 2},
				Revenue:     dec("82.50"),
			}, nil
		},
	}
	u := newOrderUC(orders, stubProductRepository{}, cache.NewMemory())
	ctx := context.Background()

	if _, err := u.Stats(ctx, Caller{UserID: 7, Role: model.RoleCustomer}); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if computes != 0 {
		t.Fatal("stats computed for non-admin")
	}

	admin := Caller{UserID: 1, Role: model.RoleAdmin}
	for i := 0; i < 3; i++ {
		stats, err := u.Stats(ctx, admin)
		if err != nil {
			t.Fatalf("stats %d: %v", i, err)
		}
		if stats.TotalOrders != 3 || !stats.Revenue.Equal(dec("82.50")) {
			t.Fatalf("stats %d = %+v", i, stats)
		}
	}
	if computes != 1 {
		t.Fatalf("computations = %d, want 1", computes)
	}
}

func TestRefreshStatsRepopulatesCache(t *testing.T) {
	orders := stubOrderRepository{
		statsFn: func(context.Context) (*model.OrderStats, error) {
			return &model.OrderStats{TotalOrders: 9}, nil
		},
	}
	c := cache.NewMemory()
	u := newOrderUC(orders, stubProductRepository{}, c)
	ctx := context.Background()

	if _, err := u.RefreshStats(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, ok, _ := c.Get(ctx, cacheBucketStats, statsCacheKey); !ok {
		t.Fatal("stats bucket not repopulated")
	}
}
