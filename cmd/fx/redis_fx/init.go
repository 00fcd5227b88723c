package redis_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/infra"
)

// Module provides a *redis.Client that is nil when REDIS_ADDR is unset.
var Module = fx.Provide(infra.InitRedis)
