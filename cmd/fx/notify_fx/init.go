package notify_fx

import (
	"context"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vivubot/internal/config"
	"vivubot/internal/notify"
)

var Module = fx.Options(
	fx.Provide(provideHub, provideUpgrader),
	fx.Invoke(startRelay),
)

func provideHub(lc fx.Lifecycle, logger *zap.Logger) *notify.Hub {
	hub := notify.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return hub
}

func provideUpgrader(cfg *config.Config) *websocket.Upgrader {
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		return notify.NewUpgrader(nil)
	}
	return notify.NewUpgrader(func(origin string) bool {
		return slices.Contains(cfg.AllowedOrigins, origin)
	})
}

// startRelay is a no-op without redis.
func startRelay(lc fx.Lifecycle, rdb *redis.Client, hub *notify.Hub, logger *zap.Logger) {
	if rdb == nil {
		return
	}
	relay := notify.NewRelay(rdb, hub, logger)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := relay.Run(ctx); err != nil {
					logger.Error("destination relay stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
