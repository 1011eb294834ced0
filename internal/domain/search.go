package domain

import (
	"strconv"
	"strings"
)

// SearchFilters describes one search
type SearchFilters struct {
	Query        string
	Kind         MediaKind // movie, tv or person
	Year         int       // 0 = any; ignored for people
	IncludeAdult bool
}

// Normalize trims the query, collapses whitespace and defaults the kind to movie.
func (f SearchFilters) Normalize() SearchFilters {
	f.Query = strings.Join(strings.Fields(f.Query), " ")
	if f.Kind == "" {
		f.Kind = KindMovie
	}
	if f.Kind == KindPerson || f.Year < 0 {
		f.Year = 0
	}
	return f
}

// Key returns the canonical identity of the search. Two filters with the same
// key always produce the same results.
func (f SearchFilters) Key() string {
	n := f.Normalize()
	var b strings.Builder
	b.WriteString("search:")
	b.WriteString(string(n.Kind))
	b.WriteString(":")
	b.WriteString(strings.ToLower(n.Query))
	if n.Year > 0 {
		b.WriteString(":y")
		b.WriteString(strconv.Itoa(n.Year))
	}
	if n.IncludeAdult {
		b.WriteString(":adult")
	}
	return b.String()
}
