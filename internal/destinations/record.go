// Package destinations keeps the deduplicated list of places discovered while
// chatting and notifies other views when it grows.
package destinations

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultType is used when a lookup does not say what kind of place it is.
const DefaultType = "thành phố"

// Record is a place seen in conversation, keyed by Name.
type Record struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Intro     string `json:"intro,omitempty"`
}

// Key is the identity used for deduplication.
func (r Record) Key() string {
	return strings.TrimSpace(r.Name)
}

// Normalize trims fields and fills Slug and Type when missing.
func (r Record) Normalize() Record {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	if r.Type == "" {
		r.Type = DefaultType
	}
	if r.Slug == "" {
		r.Slug = Slugify(r.Name)
	}
	return r
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns "Đà Lạt" into "da-lat".
func Slugify(name string) string {
	s, _, err := transform.String(stripMarks, name)
	if err != nil {
		s = name
	}
	s = strings.NewReplacer("đ", "d", "Đ", "d").Replace(s)
	s = strings.ToLower(s)

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
