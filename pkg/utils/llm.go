package utils

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGPT    = "gpt"
	ProviderGemini = "gemini"
)

// ChatTurn is one prior exchange handed to a model as context.
// Role is "user" or "assistant".
type ChatTurn struct {
	Role    string
	Content string
}

// TextGenerator is implemented by every LLM provider client.
type TextGenerator interface {
	GenerateText(ctx context.Context, system string, history []ChatTurn, prompt string) (string, error)
	Close() error
}

// NormalizeProvider maps user supplied provider hints onto the canonical
// names; "openai" is accepted as an alias of "gpt".
func NormalizeProvider(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "gpt", "openai":
		return ProviderGPT
	case "gemini", "google":
		return ProviderGemini
	default:
		return strings.ToLower(strings.TrimSpace(p))
	}
}

// NewTextGenerator creates either an OpenAI or a Gemini client.
func NewTextGenerator(ctx context.Context, provider, apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: api key is empty", provider)
	}
	switch NormalizeProvider(provider) {
	case ProviderGPT:
		return NewOpenAIClient(apiKey, model), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}
