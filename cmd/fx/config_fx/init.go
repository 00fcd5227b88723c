package config_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/config"
	"vivubot/internal/infra"
)

var Module = fx.Provide(
	config.Load,
	infra.NewLogger,
)
