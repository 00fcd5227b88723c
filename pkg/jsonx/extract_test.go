package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchingClose(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		s := `x {"a": {"b": [1, {"c": 2}]}} y`
		end := MatchingClose(s, 2)
		require.NotEqual(t, -1, end)
		assert.Equal(t, `{"a": {"b": [1, {"c": 2}]}}`, s[2:end+1])
	})

	t.Run("braces inside strings", func(t *testing.T) {
		s := `{"note": "use } and { freely \" ok"}`
		assert.Equal(t, len(s)-1, MatchingClose(s, 0))
	})

	t.Run("unterminated", func(t *testing.T) {
		assert.Equal(t, -1, MatchingClose(`{"a": 1`, 0))
	})

	t.Run("not an opener", func(t *testing.T) {
		assert.Equal(t, -1, MatchingClose(`abc`, 1))
		assert.Equal(t, -1, MatchingClose(`abc`, 10))
	})
}

func TestFindFenced(t *testing.T) {
	s := "Lịch trình:\n```json\n{\"route\": {}}\n```\nChúc vui!"
	f, ok := FindFenced(s)
	require.True(t, ok)
	assert.Equal(t, `{"route": {}}`, f.Body)
	assert.Equal(t, "Lịch trình:\n", s[:f.Start])
	assert.Equal(t, "\nChúc vui!", s[f.End:])

	_, ok = FindFenced("no fences here")
	assert.False(t, ok)
}

func TestOuterBraces(t *testing.T) {
	start, end, ok := OuterBraces(`a {b} c {d} e`)
	require.True(t, ok)
	assert.Equal(t, 2, start)
	assert.Equal(t, 10, end)

	_, _, ok = OuterBraces(`} backwards {`)
	assert.False(t, ok)
}

func TestBalancedObjects(t *testing.T) {
	spans := BalancedObjects(`{a} and {"b": {"c": 1}}`)
	require.Len(t, spans, 3)
	assert.Equal(t, Span{Start: 0, End: 2}, spans[0])
	assert.Equal(t, Span{Start: 8, End: 22}, spans[1])
}

func TestClean(t *testing.T) {
	assert.Equal(t, `[{"name": "Huế"}]`, Clean("Here you go:\n```json\n[{\"name\": \"Huế\"}]\n```"))
	assert.Equal(t, `{"a": 1}`, Clean(`Itinerary: {"a": 1} trailing`))
}
