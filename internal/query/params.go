package query

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of items per page.
const DefaultPageSize = 12

// SortKey selects the ordering of results
type SortKey int

const (
	SortRatingDesc SortKey = iota // Default
	SortRatingAsc
	SortTitleAsc
	SortTitleDesc
	SortYearDesc
	SortYearAsc
)

// SortKeys lists every key in menu order.
var SortKeys = []SortKey{
	SortRatingDesc,
	SortRatingAsc,
	SortTitleAsc,
	SortTitleDesc,
	SortYearDesc,
	SortYearAsc,
}

// String returns the wire name of the sort key ("vote.desc", ...)
func (k SortKey) String() string {
	switch k {
	case SortRatingDesc:
		return "vote.desc"
	case SortRatingAsc:
		return "vote.asc"
	case SortTitleAsc:
		return "title.asc"
	case SortTitleDesc:
		return "title.desc"
	case SortYearDesc:
		return "year.desc"
	case SortYearAsc:
		return "year.asc"
	default:
		return "unknown"
	}
}

// Label returns a human-readable description of the sort key
func (k SortKey) Label() string {
	switch k {
	case SortRatingDesc:
		return "Rating High → Low"
	case SortRatingAsc:
		return "Rating Low → High"
	case SortTitleAsc:
		return "Title A → Z"
	case SortTitleDesc:
		return "Title Z → A"
	case SortYearDesc:
		return "Year New → Old"
	case SortYearAsc:
		return "Year Old → New"
	default:
		return "Unknown"
	}
}

// Next returns the following key in menu order, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortRatingDesc
}

// ParseSortKey parses a wire name such as "title.asc". An empty string gives
// the default key.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortRatingDesc, nil
	}
	for _, key := range SortKeys {
		if key.String() == s {
			return key, nil
		}
	}
	return SortRatingDesc, fmt.Errorf("unknown sort key %q", s)
}

// Params is the user-controlled query tuple. Any combination is legal.
type Params struct {
	Search   string // Free text matched against title and overview
	Category string // Genre id; non-numeric means no filter
	Year     string // Prefix of the item date
	Sort     SortKey
	Page     int // 1-based
}

// categoryID returns the numeric genre filter, if any.
func (p Params) categoryID() (int, bool) {
	c := strings.TrimSpace(p.Category)
	if c == "" {
		return 0, false
	}
	id, err := strconv.Atoi(c)
	if err != nil {
		return 0, false
	}
	return id, true
}
