package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nlenjibi/storefront/internal/adapter/cache"
	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/domain/repository"
)

// number generation is retried this many times on a unique-index conflict.
const orderNumberAttempts = 3

// CheckoutOverrides carries optional per-checkout adjustments. Nil numeric
// fields fall back to cart/config values.
type CheckoutOverrides struct {
	ShippingAddress string
	ShippingMethod  string
	PaymentMethod   string
	Notes           string
	TaxRate         *decimal.Decimal
	ShippingCost    *decimal.Decimal
	Discount        *decimal.Decimal
}

// CheckoutUseCase converts carts into orders: it reserves inventory for every
// line or none, snapshots prices, assigns the order number, computes totals,
// persists, and then deducts stock walking the saved order's items.
type CheckoutUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	cache    cache.Cache
	taxRate  decimal.Decimal
	logger   *slog.Logger

	now       func() time.Time
	newNumber func(time.Time) string
}

// NewCheckoutUseCase constructs the checkout factory.
func NewCheckoutUseCase(
	carts repository.CartRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	c cache.Cache,
	defaultTaxRate decimal.Decimal,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		carts:     carts,
		products:  products,
		orders:    orders,
		users:     users,
		cache:     c,
		taxRate:   defaultTaxRate,
		logger:    logger,
		now:       time.Now,
		newNumber: GenerateOrderNumber,
	}
}

// CreateFromCart builds and persists an order from the cart. Reservation is
// all-or-nothing: if any line cannot be reserved, reservations already made
// in this call are released and the checkout fails with no order created.
func (u *CheckoutUseCase) CreateFromCart(ctx context.Context, cartID uuid.UUID, userID int64, overrides CheckoutOverrides) (*model.Order, error) {
	if cartID == uuid.Nil || userID <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	cart, err := u.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.UserID != user.ID {
		return nil, domainErrors.ErrUnauthorized
	}
	if cart.IsEmpty() {
		return nil, domainErrors.ErrInvalidState
	}
	for _, line := range cart.Items {
		if line.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidArgument
		}
	}

	if err := u.reserveAll(ctx, cart.Items); err != nil {
		return nil, err
	}

	order := u.buildOrder(cart, user.ID, overrides)

	saved, err := u.persistWithFreshNumber(ctx, order)
	if err != nil {
		u.releaseAll(ctx, cart.Items)
		return nil, err
	}

	// Deduction walks the saved aggregate, not the cart: a crash before this
	// point leaves reservations for a reconciliation job, never deducted stock.
	for _, item := range saved.Items {
		if err := u.products.Deduct(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("deduct stock for order %s: %w", saved.Number, err)
		}
	}

	if err := u.carts.Clear(ctx, cart.ID); err != nil {
		u.logger.Error("clear cart after checkout",
			slog.String("cart", cart.ID.String()), slog.String("error", err.Error()))
	}

	u.evictViews(ctx, saved.UserID)

	return saved, nil
}

func (u *CheckoutUseCase) reserveAll(ctx context.Context, lines []model.CartItem) error {
	for i, line := range lines {
		if err := u.products.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			u.releaseAll(ctx, lines[:i])
			return err
		}
	}
	return nil
}

func (u *CheckoutUseCase) releaseAll(ctx context.Context, lines []model.CartItem) {
	for _, line := range lines {
		if err := u.products.Release(ctx, line.ProductID, line.Quantity); err != nil {
			u.logger.Error("release reservation",
				slog.Int64("product", line.ProductID), slog.String("error", err.Error()))
		}
	}
}

func (u *CheckoutUseCase) buildOrder(cart *model.Cart, userID int64, overrides CheckoutOverrides) *model.Order {
	taxRate := u.taxRate
	if overrides.TaxRate != nil {
		taxRate = *overrides.TaxRate
	}
	shippingCost := decimal.Zero
	if overrides.ShippingCost != nil {
		shippingCost = *overrides.ShippingCost
	}
	discount := decimal.Zero
	if overrides.Discount != nil {
		discount = *overrides.Discount
	}

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentMethod:   overrides.PaymentMethod,
		TaxRate:         taxRate,
		ShippingCost:    shippingCost,
		DiscountAmount:  discount,
		CouponCode:      cart.CouponCode,
		CouponDiscount:  cart.CouponDiscount,
		ShippingAddress: overrides.ShippingAddress,
		ShippingMethod:  overrides.ShippingMethod,
		Notes:           overrides.Notes,
		Active:          true,
	}

	for _, line := range cart.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Discount:    decimal.Zero,
			TotalPrice:  model.LineTotal(line.UnitPrice, line.Quantity, decimal.Zero),
		})
	}

	order.RecalculateTotals()
	return order
}

func (u *CheckoutUseCase) persistWithFreshNumber(ctx context.Context, order *model.Order) (*model.Order, error) {
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.Number = u.newNumber(u.now())
		saved, err := u.orders.Create(ctx, order)
		if err == nil {
			return saved, nil
		}
		lastErr = err
		if err != domainErrors.ErrAlreadyExists {
			return nil, err
		}
		u.logger.Warn("order number collision, regenerating", slog.String("number", order.Number))
	}
	return nil, fmt.Errorf("assign order number: %w", lastErr)
}

func (u *CheckoutUseCase) evictViews(ctx context.Context, userID int64) {
	if err := u.cache.Evict(ctx, cacheBucketUserOrders, fmt.Sprintf("%d", userID)); err != nil {
		u.logger.Error("evict user orders view", slog.String("error", err.Error()))
	}
	if err := u.cache.Evict(ctx, cacheBucketStats, statsCacheKey); err != nil {
		u.logger.Error("evict stats view", slog.String("error", err.Error()))
	}
}
