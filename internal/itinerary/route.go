// Package itinerary holds the multi-day route model and the parser that pulls
// a route out of free-form generator output.
package itinerary

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Stop is one visit within a day. Decoding is lenient: coordinates may be
// numbers or numeric strings and fall back to 0 when unreadable, and text
// fields that arrive as numbers or booleans keep their literal form.
type Stop struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Time        string  `json:"time"`
	Description string  `json:"description,omitempty"`
}

// UnmarshalJSON fails only when data is not a JSON object.
func (s *Stop) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        json.RawMessage `json:"name"`
		Latitude    json.RawMessage `json:"latitude"`
		Longitude   json.RawMessage `json:"longitude"`
		Time        json.RawMessage `json:"time"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Stop{
		Name:        text(raw.Name),
		Latitude:    coordinate(raw.Latitude),
		Longitude:   coordinate(raw.Longitude),
		Time:        text(raw.Time),
		Description: text(raw.Description),
	}
	return nil
}

func coordinate(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// text renders a scalar as a string; null, objects and arrays become "".
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

// Route maps a day key ("day1", "day2", ...) to its ordered stops.
type Route map[string][]Stop

// DefaultDays are the keys of the empty route shown before any itinerary exists.
var DefaultDays = []string{"day1", "day2", "day3"}

// DefaultRoute returns the "no itinerary yet" route: every default day present
// and empty, so the day selector stays stable.
func DefaultRoute() Route {
	r := make(Route, len(DefaultDays))
	for _, d := range DefaultDays {
		r[d] = []Stop{}
	}
	return r
}

// Days returns the route's keys in display order: dayN keys by N, then any
// other labels lexically.
func (r Route) Days() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return DayLess(keys[i], keys[j])
	})
	return keys
}

// FirstDay is the key the selection resets to when a route is installed.
func (r Route) FirstDay() string {
	days := r.Days()
	if len(days) == 0 {
		return ""
	}
	return days[0]
}

// Stops returns the stops of day; missing keys read as empty.
func (r Route) Stops(day string) []Stop {
	if r == nil {
		return nil
	}
	return r[day]
}

func (r Route) Has(day string) bool {
	_, ok := r[day]
	return ok
}

// IsEmpty reports whether no day has any stop.
func (r Route) IsEmpty() bool {
	for _, stops := range r {
		if len(stops) > 0 {
			return false
		}
	}
	return true
}

// Clone copies the route so callers can't alias controller state.
func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	out := make(Route, len(r))
	for k, v := range r {
		out[k] = append([]Stop(nil), v...)
	}
	return out
}

// DayNumber extracts N from "dayN" (case-insensitive, "day 2" and "Day_2"
// accepted).
func DayNumber(key string) (int, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if !strings.HasPrefix(k, "day") {
		return 0, false
	}
	k = strings.TrimLeft(k[3:], " _-")
	n, err := strconv.Atoi(k)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// DayLess orders recognised dayN keys numerically ahead of everything else.
func DayLess(a, b string) bool {
	na, okA := DayNumber(a)
	nb, okB := DayNumber(b)
	switch {
	case okA && okB:
		if na != nb {
			return na < nb
		}
		return a < b
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}
