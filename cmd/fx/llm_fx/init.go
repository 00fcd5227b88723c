package llm_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"vivubot/internal/config"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

var Module = fx.Provide(ProvideLLMProviders)

// ProvideLLMProviders builds one client per provider with a configured key.
func ProvideLLMProviders(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (services.LLMProviders, error) {
	ctx := context.Background()
	clients := map[string]utils.TextGenerator{}

	if cfg.OpenAIAPIKey != "" {
		client, err := utils.NewTextGenerator(ctx, utils.ProviderGPT, cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		clients[utils.ProviderGPT] = client
	}
	if cfg.GeminiAPIKey != "" {
		client, err := utils.NewTextGenerator(ctx, utils.ProviderGemini, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		clients[utils.ProviderGemini] = client
	}

	providers, err := services.NewLLMProviders(cfg.AIProvider, clients)
	if err != nil {
		return nil, err
	}
	logger.Info("Initialized AI providers",
		zap.Int("count", len(clients)), zap.String("default", cfg.AIProvider))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return providers.Close()
		},
	})
	return providers, nil
}
