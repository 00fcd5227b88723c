package controllers_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewTravelPlanController),
	fx.Provide(controllers.NewDestinationController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewRouteController),
	fx.Provide(controllers.NewPreferencesController),
	fx.Provide(controllers.NewNotifyController),
	fx.Provide(controllers.NewHealthController))
