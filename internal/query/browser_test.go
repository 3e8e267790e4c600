package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowser_FilterChangesResetPage(t *testing.T) {
	b := NewBrowser(2, SortTitleAsc)
	b.SetCollection(makeItems(10))

	setters := map[string]func(){
		"search":   func() { b.SetSearch("item") },
		"category": func() { b.SetCategory("42") },
		"year":     func() { b.SetYear("20") },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			b.Apply(Params{Sort: SortTitleAsc, Page: 3})
			assert.Equal(t, 3, b.Params().Page)

			set()
			assert.Equal(t, 1, b.Params().Page)
		})
	}
}

func TestBrowser_SameFilterValueKeepsPage(t *testing.T) {
	b := NewBrowser(2, SortTitleAsc)
	b.SetCollection(makeItems(10))
	b.SetSearch("item")
	b.SetPage(3)

	b.SetSearch("item")
	assert.Equal(t, 3, b.Params().Page)
}

func TestBrowser_SortChangeKeepsPage(t *testing.T) {
	b := NewBrowser(2, SortTitleAsc)
	b.SetCollection(makeItems(10))
	b.SetPage(4)

	res := b.SetSort(SortTitleDesc)
	assert.Equal(t, 4, b.Params().Page)
	assert.Equal(t, []string{"Item 004", "Item 003"}, titlesOf(res.Items))
}

func TestBrowser_ClampsWhenResultShrinks(t *testing.T) {
	b := NewBrowser(2, SortTitleAsc)
	b.SetCollection(makeItems(10))
	b.SetPage(5)

	// A smaller collection arrives on reload
	res := b.SetCollection(makeItems(3))
	assert.Equal(t, 2, b.Params().Page)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, []string{"Item 003"}, titlesOf(res.Items))

	// An empty collection still has one page
	res = b.SetCollection(nil)
	assert.Equal(t, 1, b.Params().Page)
	assert.Equal(t, 1, res.TotalPages)
	assert.Empty(t, res.Items)
}

func TestBrowser_PageNavigation(t *testing.T) {
	b := NewBrowser(4, SortTitleAsc)
	b.SetCollection(makeItems(10))

	b.PrevPage()
	assert.Equal(t, 1, b.Params().Page)

	b.NextPage()
	b.NextPage()
	b.NextPage()
	assert.Equal(t, 3, b.Params().Page)

	b.SetPage(99)
	assert.Equal(t, 3, b.Params().Page)
}

func TestBrowser_DefaultPageSize(t *testing.T) {
	b := NewBrowser(0, SortRatingDesc)
	assert.Equal(t, DefaultPageSize, b.PageSize())
	assert.Equal(t, 1, b.Result().TotalPages)
}

func TestPageWindow(t *testing.T) {
	assert.Nil(t, PageWindow(1, 1, 5))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 10, 5))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageWindow(6, 10, 5))
	assert.Equal(t, []int{8, 9, 10}, PageWindow(10, 10, 5))
	assert.Equal(t, []int{1, 2, 3}, PageWindow(2, 3, 5))
}
