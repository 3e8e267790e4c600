package query

import (
	"bytes"
	"cmp"
	"slices"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders items in place by key. The sort is stable: ties keep their
// incoming order.
func Sort(items []domain.Item, key SortKey) {
	switch key {
	case SortTitleAsc, SortTitleDesc:
		sortByTitle(items, key == SortTitleDesc)
	case SortRatingAsc:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			return cmp.Compare(a.Rating, b.Rating)
		})
	case SortRatingDesc:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortYearAsc:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			return cmp.Compare(a.Year(), b.Year())
		})
	case SortYearDesc:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			return cmp.Compare(b.Year(), a.Year())
		})
	}
}

// SortTitle returns the title used for ordering: leading punctuation and
// symbols stripped, lowercased. "'Til Death" sorts as "til death".
func SortTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	trimmed = strings.TrimLeftFunc(trimmed, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	return strings.ToLower(trimmed)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// sortByTitle compares precomputed English collation keys. A collator is
// built per call because collate.Collator is not safe for concurrent use.
func sortByTitle(items []domain.Item, desc bool) {
	col := collate.New(language.English)
	var buf collate.Buffer

	type keyed struct {
		key  []byte
		item domain.Item
	}
	rows := make([]keyed, len(items))
	for i, item := range items {
		k := col.KeyFromString(&buf, SortTitle(item.Title))
		rows[i] = keyed{key: bytes.Clone(k), item: item}
		buf.Reset()
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		if desc {
			return bytes.Compare(b.key, a.key)
		}
		return bytes.Compare(a.key, b.key)
	})

	for i, row := range rows {
		items[i] = row.item
	}
}
