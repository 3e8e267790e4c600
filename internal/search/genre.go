// Package search resolves loose user input against the catalog: genre names
// typed on the command line and "did you mean" suggestions for queries that
// match nothing.
package search

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// ResolveGenre finds the genre a user meant. query may be a numeric genre
// ID, an exact name (case-insensitive), a name prefix, or a fuzzy fragment
// ("scifi" finds "Science Fiction"). The closest fuzzy match wins; ties go
// to the genre listed first.
func ResolveGenre(query string, genres []domain.Genre) (domain.Genre, bool) {
	query = strings.TrimSpace(query)
	if query == "" || len(genres) == 0 {
		return domain.Genre{}, false
	}

	if id, err := strconv.Atoi(query); err == nil {
		for _, g := range genres {
			if g.ID == id {
				return g, true
			}
		}
		return domain.Genre{}, false
	}

	for _, g := range genres {
		if strings.EqualFold(g.Name, query) {
			return g, true
		}
	}

	lower := strings.ToLower(query)
	for _, g := range genres {
		if strings.HasPrefix(strings.ToLower(g.Name), lower) {
			return g, true
		}
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return domain.Genre{}, false
	}
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.OriginalIndex - b.OriginalIndex
	})
	return genres[ranks[0].OriginalIndex], true
}
