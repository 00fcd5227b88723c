package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"vivubot/cmd/fx/chat_fx"
	"vivubot/cmd/fx/config_fx"
	"vivubot/cmd/fx/controllers_fx"
	"vivubot/cmd/fx/db_fx"
	"vivubot/cmd/fx/destination_fx"
	"vivubot/cmd/fx/itinerary_fx"
	"vivubot/cmd/fx/llm_fx"
	"vivubot/cmd/fx/memcache_fx"
	"vivubot/cmd/fx/notify_fx"
	"vivubot/cmd/fx/preferences_fx"
	"vivubot/cmd/fx/redis_fx"
	"vivubot/cmd/fx/route_fx"
	"vivubot/cmd/fx/travel_plan_fx"
	"vivubot/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		db_fx.Module,
		redis_fx.Module,
		memcache_fx.Module,
		llm_fx.Module,

		chat_fx.Module,
		travel_plan_fx.Module,
		preferences_fx.Module,
		destination_fx.Module,
		itinerary_fx.Module,
		route_fx.Module,
		notify_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
