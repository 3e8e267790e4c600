package query

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Result is one page of a query. It is derived, never stored.
type Result struct {
	Items      []domain.Item // At most one page, in sorted order
	Page       int           // The page these items belong to
	TotalPages int           // Always >= 1
	Total      int           // Items matching the filters
}

// Run filters, sorts and paginates items. It is pure: items is not modified
// and the same inputs always give the same result. Run never clamps Page;
// a page past the end yields no items.
func Run(items []domain.Item, p Params, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	matched := Filter(items, p)
	Sort(matched, p.Sort)

	return paginate(matched, p.Page, pageSize)
}

// Filter applies the search, category and year filters in that order and
// returns a new slice.
func Filter(items []domain.Item, p Params) []domain.Item {
	needle := strings.ToLower(strings.TrimSpace(p.Search))
	genre, byGenre := p.categoryID()
	year := p.Year

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesText(item, needle) {
			continue
		}
		if byGenre && !item.HasGenre(genre) {
			continue
		}
		if year != "" && !strings.HasPrefix(item.Date(), year) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// matchesText reports whether needle (already lowercased) occurs in the
// title or overview.
func matchesText(item domain.Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Overview), needle)
}

// TotalPages returns max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (n + pageSize - 1) / pageSize
	return max(1, pages)
}

func paginate(items []domain.Item, page, pageSize int) Result {
	if page < 1 {
		page = 1
	}

	result := Result{
		Page:       page,
		TotalPages: TotalPages(len(items), pageSize),
		Total:      len(items),
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		result.Items = []domain.Item{}
		return result
	}
	end := min(start+pageSize, len(items))
	result.Items = items[start:end:end]
	return result
}
