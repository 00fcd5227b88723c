package route_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vivubot/internal/config"
	"vivubot/internal/models/response_models"
	"vivubot/internal/services"
	mem "vivubot/pkg/memcache"
)

var Module = fx.Provide(provideRouteService)

func provideRouteService(cfg *config.Config, cache mem.Store[string, response_models.FeatureCollection], logger *zap.Logger) services.RouteServiceInterface {
	if cfg.OpenRouteAPIKey == "" {
		logger.Info("OPENROUTE_API_KEY not set, routes fall back to straight lines")
	}
	return services.NewRouteService(cfg.OpenRouteAPIKey, cache, logger)
}
