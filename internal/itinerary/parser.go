package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vivubot/pkg/jsonx"
)

var (
	ErrNoJSON         = errors.New("no parsable JSON object in text")
	ErrNoRoute        = errors.New("JSON object has no route field")
	ErrMalformedRoute = errors.New("route field is not a day-keyed list of stops")
)

// ParseError is returned by ParseRoute when no route could be extracted.
// Kind is one of ErrNoJSON, ErrNoRoute or ErrMalformedRoute.
type ParseError struct {
	Kind error
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse route: %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("parse route: %v", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Kind }

type envelope struct {
	Route json.RawMessage `json:"route"`
}

// candidate is a region of the text that may hold the route object. cut is
// the region removed from the display text on success.
type candidate struct {
	body     string
	cutStart int
	cutEnd   int // exclusive
}

// ParseRoute extracts the route embedded in generator output.
//
// It tries, in order, a ```json fenced block, the span from the first '{' to
// the last '}', and then every balanced {...} object left to right. On
// success display is text with the matched region removed and trimmed. On
// failure display is text unchanged, route is nil and err is a *ParseError.
func ParseRoute(text string) (display string, route Route, err error) {
	var failure *ParseError

	try := func(c candidate) bool {
		r, perr := decodeRoute(c.body)
		if perr != nil {
			failure = worse(failure, perr)
			return false
		}
		route = r
		display = strings.TrimSpace(text[:c.cutStart] + text[c.cutEnd:])
		return true
	}

	if f, ok := jsonx.FindFenced(text); ok {
		if try(candidate{body: f.Body, cutStart: f.Start, cutEnd: f.End}) {
			return display, route, nil
		}
	}

	start, end, ok := jsonx.OuterBraces(text)
	if !ok {
		if failure == nil {
			failure = &ParseError{Kind: ErrNoJSON}
		}
		return text, nil, failure
	}
	if try(candidate{body: text[start : end+1], cutStart: start, cutEnd: end + 1}) {
		return display, route, nil
	}

	for _, span := range jsonx.BalancedObjects(text) {
		if span.Start == start && span.End == end {
			continue
		}
		if try(candidate{body: text[span.Start : span.End+1], cutStart: span.Start, cutEnd: span.End + 1}) {
			return display, route, nil
		}
	}

	return text, nil, failure
}

func decodeRoute(body string) (Route, *ParseError) {
	body = strings.TrimSpace(body)
	if body == "" || body[0] != '{' {
		return nil, &ParseError{Kind: ErrNoJSON}
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, &ParseError{Kind: ErrNoJSON, Err: err}
	}
	raw := bytes.TrimSpace(env.Route)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &ParseError{Kind: ErrNoRoute}
	}

	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, &ParseError{Kind: ErrMalformedRoute, Err: err}
	}
	if len(days) == 0 {
		return DefaultRoute(), nil
	}
	route := make(Route, len(days))
	for day, list := range days {
		route[day] = decodeStops(list)
	}
	return route, nil
}

// decodeStops keeps every stop that is a JSON object. A day that is not a
// list comes back empty.
func decodeStops(raw json.RawMessage) []Stop {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Stop{}
	}
	stops := make([]Stop, 0, len(items))
	for _, item := range items {
		var st Stop
		if err := json.Unmarshal(item, &st); err != nil {
			continue
		}
		stops = append(stops, st)
	}
	return stops
}

// worse keeps the most specific failure seen so far: a route that was found
// but malformed beats an object without a route, which beats no JSON at all.
func worse(cur, next *ParseError) *ParseError {
	if cur == nil {
		return next
	}
	if rank(next.Kind) > rank(cur.Kind) {
		return next
	}
	return cur
}

func rank(kind error) int {
	switch kind {
	case ErrMalformedRoute:
		return 2
	case ErrNoRoute:
		return 1
	default:
		return 0
	}
}

// Display returns the prose part of a stored bot message. Text without a
// route is returned unchanged.
func Display(text string) string {
	display, _, _ := ParseRoute(text)
	return display
}
