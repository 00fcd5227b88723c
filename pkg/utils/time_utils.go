package utils

import (
	"fmt"
	"strings"
	"time"
)

// Vietnam time location (ICT, +07:00)
var vnLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Ho_Chi_Minh"); err == nil {
		return loc
	}
	return time.FixedZone("ICT", 7*3600)
}()

func VNLocation() *time.Location { return vnLoc }

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSecondsVN returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsVN(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(vnLoc)
}

func FormatRFC3339VN(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(vnLoc).Format(time.RFC3339) // e.g. 2025-09-24T15:12:00+07:00
}

// ParseDateVN accepts RFC3339 timestamps and bare "2006-01-02" dates, the
// latter interpreted as midnight in Vietnam.
func ParseDateVN(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(vnLoc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, vnLoc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
