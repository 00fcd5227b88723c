package memcache_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/models/response_models"
	mem "vivubot/pkg/memcache"
)

var Module = fx.Provide(provideDestinationCache, provideRouteCache)

func provideDestinationCache() mem.Store[string, response_models.DestinationResponse] {
	return mem.NewTTL[string, response_models.DestinationResponse]()
}

func provideRouteCache() mem.Store[string, response_models.FeatureCollection] {
	return mem.NewTTL[string, response_models.FeatureCollection]()
}
