package di

import (
	"go.uber.org/fx"

	"github.com/nlenjibi/storefront/internal/adapter/cache"
	"github.com/nlenjibi/storefront/internal/app"
	"github.com/nlenjibi/storefront/internal/config"
	"github.com/nlenjibi/storefront/internal/logger"
	"github.com/nlenjibi/storefront/internal/pkg/auth"
	"github.com/nlenjibi/storefront/internal/server/http/router"
	"github.com/nlenjibi/storefront/internal/storage/postgres"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// Module assembles the full application graph. Extra options let tests
// replace individual pieces.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
