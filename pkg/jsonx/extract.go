// Package jsonx locates JSON values embedded in free-form LLM output.
package jsonx

import (
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*?)\\s*```")

// Fenced describes a ```json block: Start/End bound the whole fence
// (backticks included), Body is the trimmed content.
type Fenced struct {
	Start, End int
	Body       string
}

// FindFenced returns the first ```json fenced block in s.
func FindFenced(s string) (Fenced, bool) {
	loc := fencedBlock.FindStringSubmatchIndex(s)
	if loc == nil {
		return Fenced{}, false
	}
	return Fenced{Start: loc[0], End: loc[1], Body: s[loc[2]:loc[3]]}, true
}

// OuterBraces returns the byte offsets of the first '{' and the last '}'.
// end is inclusive.
func OuterBraces(s string) (start, end int, ok bool) {
	start = strings.IndexByte(s, '{')
	end = strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// MatchingClose returns the index of the bracket closing the one at start,
// skipping over JSON string literals. -1 when s[start] is not an opener or the
// value is unterminated.
func MatchingClose(s string, start int) int {
	if start < 0 || start >= len(s) {
		return -1
	}
	open := s[start]
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// Span is a balanced JSON-looking region of a string, end inclusive.
type Span struct {
	Start, End int
}

// BalancedObjects lists every balanced {...} region in s, in order of their
// opening brace. Nested objects are reported too.
func BalancedObjects(s string) []Span {
	var spans []Span
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if end := MatchingClose(s, i); end != -1 {
			spans = append(spans, Span{Start: i, End: end})
		}
	}
	return spans
}

// Clean strips markdown fences and leading chatter and returns the first
// complete JSON object or array found in response.
func Clean(response string) string {
	if f, ok := FindFenced(response); ok {
		response = f.Body
	}
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if objEnd := MatchingClose(response, objStart); objEnd != -1 {
			response = response[objStart : objEnd+1]
		}
	} else if arrStart != -1 {
		if arrEnd := MatchingClose(response, arrStart); arrEnd != -1 {
			response = response[arrStart : arrEnd+1]
		}
	}

	return strings.TrimSpace(response)
}
