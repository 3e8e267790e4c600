package search

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/sahilm/fuzzy"
)

// DefaultSuggestions is how many suggestions Suggest returns when n <= 0.
const DefaultSuggestions = 5

// titleIndex implements fuzzy.Source over item titles
type titleIndex struct {
	items       []domain.Item
	lowerTitles []string
}

func newTitleIndex(items []domain.Item) *titleIndex {
	lower := make([]string, len(items))
	for i, item := range items {
		lower[i] = strings.ToLower(item.Title)
	}
	return &titleIndex{items: items, lowerTitles: lower}
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *titleIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *titleIndex) Len() int { return len(idx.items) }

// Suggest returns up to n items whose titles fuzzy-match query, best match
// first. It is used when a substring search finds nothing.
func Suggest(query string, items []domain.Item, n int) []domain.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(items) == 0 {
		return nil
	}
	if n <= 0 {
		n = DefaultSuggestions
	}

	matches := fuzzy.FindFrom(query, newTitleIndex(items))
	if len(matches) > n {
		matches = matches[:n]
	}

	out := make([]domain.Item, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}
