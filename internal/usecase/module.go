package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/nlenjibi/storefront/internal/adapter/cache"
	"github.com/nlenjibi/storefront/internal/config"
	"github.com/nlenjibi/storefront/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	newCheckoutUseCase,
	newOrderUseCase,
)

type checkoutParams struct {
	fx.In

	Carts    repository.CartRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Users    repository.UserRepository
	Cache    cache.Cache
	Config   *config.Config
	Logger   *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Carts, p.Products, p.Orders, p.Users, p.Cache, p.Config.DefaultTaxRate, p.Logger)
}

type orderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Cache    cache.Cache
	Config   *config.Config
	Logger   *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Products, p.Cache, p.Config.CacheTTL, p.Logger)
}
