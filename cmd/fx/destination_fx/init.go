package destination_fx

import (
	"go.uber.org/fx"

	"vivubot/internal/config"
	"vivubot/internal/services"
)

var Module = fx.Provide(
	provideSummarizer, services.NewDestinationService)

func provideSummarizer(cfg *config.Config) services.PlaceSummarizer {
	return services.NewWikipediaClient(cfg.WikipediaBaseURL)
}
