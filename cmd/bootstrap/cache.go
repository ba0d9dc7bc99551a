package bootstrap

import (
	"context"
	"log/slog"

	"fieldbook/internal/infra/cache"
	"fieldbook/internal/pkg/config"
	"fieldbook/internal/usecase/commands"
	"fieldbook/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewResourceReader,
	),
)

// NewResourceReader fronts resource reads with Redis when it is enabled.
// Without Redis the same reads go straight to the database.
func NewResourceReader(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork) commands.ResourceReader {
	reads := uow.CommandReads()

	if !cfg.Redis.Enabled {
		slog.Info("Redis disabled, resource reads go to the database")
		return cache.NewCachedResourceReader(reads, nil, 0)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewCachedResourceReader(reads, client, cfg.Redis.TTL)
}
