package itinerary_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/services"
)

var Module = fx.Provide(services.NewItineraryService)
