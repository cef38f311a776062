package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/nlenjibi/storefront/internal/config"
)

// Module provides the derived-view cache. A configured redis address selects
// the redis backend; otherwise a process-local cache is used.
var Module = fx.Options(
	fx.Provide(newCache),
)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newCache(p cacheParams) Cache {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("cache backend", slog.String("kind", "memory"))
		return NewMemory()
	}

	r := NewRedis(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return r.Close()
		},
	})
	p.Logger.Info("cache backend", slog.String("kind", "redis"), slog.String("addr", p.Config.RedisAddress))
	return r
}
