package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProvider(t *testing.T) {
	assert.Equal(t, ProviderGPT, NormalizeProvider("GPT"))
	assert.Equal(t, ProviderGPT, NormalizeProvider(" openai "))
	assert.Equal(t, ProviderGemini, NormalizeProvider("Gemini"))
	assert.Equal(t, "claude", NormalizeProvider("Claude"))
}

func TestNewTextGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("openai", func(t *testing.T) {
		gen, err := NewTextGenerator(ctx, "gpt", "sk-test", "")
		require.NoError(t, err)
		_, ok := gen.(*OpenAIClient)
		assert.True(t, ok)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewTextGenerator(ctx, "gpt", "", "")
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewTextGenerator(ctx, "llama", "key", "")
		assert.True(t, errors.Is(err, ErrUnsupportedProvider))
	})
}
