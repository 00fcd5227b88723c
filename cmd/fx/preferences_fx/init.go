package preferences_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/repositories"
	"vivubot/internal/services"
)

var Module = fx.Provide(
	repositories.NewPreferencesRepository, services.NewPreferencesService)
