package db_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/infra"
)

var Module = fx.Provide(
	infra.InitPostgresql)
