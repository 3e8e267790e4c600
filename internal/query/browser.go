package query

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Browser owns the query parameters for one view and keeps its result in
// step with the collection. Filter changes send the user back to page 1;
// when the result shrinks below the current page the page is clamped to the
// last one. A Browser belongs to a single goroutine.
type Browser struct {
	items    []domain.Item
	params   Params
	pageSize int
	result   Result
}

// NewBrowser creates a browser over an empty collection
func NewBrowser(pageSize int, sort SortKey) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	b := &Browser{
		pageSize: pageSize,
		params:   Params{Sort: sort, Page: 1},
	}
	b.recompute()
	return b
}

// Params returns the current parameters (after any clamping)
func (b *Browser) Params() Params { return b.params }

// Result returns the current page
func (b *Browser) Result() Result { return b.result }

// PageSize returns the fixed page size
func (b *Browser) PageSize() int { return b.pageSize }

// Items returns the collection being browsed
func (b *Browser) Items() []domain.Item { return b.items }

// SetCollection replaces the collection. The page is kept unless it no
// longer exists.
func (b *Browser) SetCollection(items []domain.Item) Result {
	b.items = items
	return b.recompute()
}

// SetSearch changes the search text and returns to page 1
func (b *Browser) SetSearch(search string) Result {
	if search != b.params.Search {
		b.params.Search = search
		b.params.Page = 1
	}
	return b.recompute()
}

// SetCategory changes the genre filter and returns to page 1
func (b *Browser) SetCategory(category string) Result {
	if category != b.params.Category {
		b.params.Category = category
		b.params.Page = 1
	}
	return b.recompute()
}

// SetYear changes the year filter and returns to page 1
func (b *Browser) SetYear(year string) Result {
	if year != b.params.Year {
		b.params.Year = year
		b.params.Page = 1
	}
	return b.recompute()
}

// SetSort changes the ordering and keeps the page
func (b *Browser) SetSort(key SortKey) Result {
	b.params.Sort = key
	return b.recompute()
}

// SetPage jumps to a page, clamped to [1, TotalPages]
func (b *Browser) SetPage(page int) Result {
	b.params.Page = max(1, page)
	return b.recompute()
}

// NextPage advances one page, stopping at the last
func (b *Browser) NextPage() Result {
	return b.SetPage(min(b.params.Page+1, b.result.TotalPages))
}

// PrevPage goes back one page, stopping at the first
func (b *Browser) PrevPage() Result {
	return b.SetPage(b.params.Page - 1)
}

// Apply replaces every parameter at once, as a CLI invocation does. The
// requested page is honored up to TotalPages.
func (b *Browser) Apply(p Params) Result {
	b.params = p
	if b.params.Page < 1 {
		b.params.Page = 1
	}
	return b.recompute()
}

// recompute runs the query and then corrects the page when it points past
// the end of the result.
func (b *Browser) recompute() Result {
	b.result = Run(b.items, b.params, b.pageSize)
	if b.params.Page > b.result.TotalPages {
		b.params.Page = b.result.TotalPages
		b.result = Run(b.items, b.params, b.pageSize)
	}
	return b.result
}

// PageWindow returns up to width page numbers to show in a pager, starting
// two before the current page.
func PageWindow(page, totalPages, width int) []int {
	if totalPages <= 1 || width <= 0 {
		return nil
	}
	start := max(1, page-2)
	end := min(totalPages, start+width-1)

	pages := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}
	return pages
}
