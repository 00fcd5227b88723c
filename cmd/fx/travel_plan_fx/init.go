package travel_plan_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/repositories"
	"vivubot/internal/services"
)

var Module = fx.Provide(
	repositories.NewTravelPlanRepository, services.NewTravelPlanService)
