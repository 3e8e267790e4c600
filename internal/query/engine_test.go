package query

import (
	"fmt"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	amelie = domain.Item{ID: "1", Title: "Amelie", Overview: "A shy waitress in Montmartre", Rating: 8.2, ReleaseDate: "2001-04-25", GenreIDs: []int{35, 10749}}
	brazil = domain.Item{ID: "2", Title: "Brazil", Overview: "A bureaucrat dreams", Rating: 7.9, ReleaseDate: "1985-02-20", GenreIDs: []int{878, 35}}
)

func titlesOf(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestRun_RatingDescPages(t *testing.T) {
	items := []domain.Item{brazil, amelie}

	page1 := Run(items, Params{Sort: SortRatingDesc, Page: 1}, 1)
	assert.Equal(t, []string{"Amelie"}, titlesOf(page1.Items))
	assert.Equal(t, 2, page1.TotalPages)

	page2 := Run(items, Params{Sort: SortRatingDesc, Page: 2}, 1)
	assert.Equal(t, []string{"Brazil"}, titlesOf(page2.Items))
}

func TestRun_Search(t *testing.T) {
	items := []domain.Item{amelie, brazil}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"title substring, case-insensitive", "AMEL", []string{"Amelie"}},
		{"overview substring", "bureaucrat", []string{"Brazil"}},
		{"padded", "  amel  ", []string{"Amelie"}},
		{"whitespace only is no-op", "   ", []string{"Amelie", "Brazil"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(items, Params{Search: tt.search, Sort: SortRatingDesc, Page: 1}, DefaultPageSize)
			assert.Equal(t, tt.want, titlesOf(res.Items))
			assert.Equal(t, 1, res.TotalPages)
		})
	}
}

func TestRun_CategoryFilter(t *testing.T) {
	items := []domain.Item{amelie, brazil}

	tests := []struct {
		category string
		want     []string
	}{
		{"35", []string{"Amelie", "Brazil"}},
		{"878", []string{"Brazil"}},
		{" 10749 ", []string{"Amelie"}},
		{"28", []string{}},
		{"comedy", []string{"Amelie", "Brazil"}},
		{"", []string{"Amelie", "Brazil"}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			res := Run(items, Params{Category: tt.category, Page: 1}, DefaultPageSize)
			assert.Equal(t, tt.want, titlesOf(res.Items))
		})
	}
}

func TestRun_YearPrefix(t *testing.T) {
	tv := domain.Item{ID: "3", Title: "Twin Peaks", FirstAirDate: "1990-04-08"}
	items := []domain.Item{amelie, brazil, tv}

	assert.Equal(t, []string{"Brazil"}, titlesOf(Run(items, Params{Year: "1985", Page: 1}, 12).Items))
	assert.Equal(t, []string{"Twin Peaks"}, titlesOf(Run(items, Params{Year: "1990", Page: 1}, 12).Items))
	assert.Equal(t, []string{"Brazil", "Twin Peaks"}, titlesOf(Run(items, Params{Year: "19", Sort: SortTitleAsc, Page: 1}, 12).Items))
}

func TestRun_FiltersCombine(t *testing.T) {
	items := []domain.Item{amelie, brazil}
	res := Run(items, Params{Search: "a", Category: "35", Year: "2001", Page: 1}, 12)
	assert.Equal(t, []string{"Amelie"}, titlesOf(res.Items))
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	items := []domain.Item{brazil, amelie}
	Run(items, Params{Sort: SortTitleAsc, Page: 1}, 12)
	assert.Equal(t, []string{"Brazil", "Amelie"}, titlesOf(items))
}

func makeItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{ID: domain.ID(fmt.Sprint(i + 1)), Title: fmt.Sprintf("Item %03d", i+1)}
	}
	return items
}

func TestRun_PaginationProperties(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 25, 36} {
		items := makeItems(n)
		total := TotalPages(n, 12)
		assert.Equal(t, max(1, (n+11)/12), total, "n=%d", n)

		for page := 1; page <= total+2; page++ {
			res := Run(items, Params{Sort: SortTitleAsc, Page: page}, 12)
			want := max(0, min(12, n-(page-1)*12))
			require.Len(t, res.Items, want, "n=%d page=%d", n, page)
			assert.Equal(t, total, res.TotalPages)
			assert.Equal(t, n, res.Total)
		}
	}
}

func TestRun_PageBelowOneIsFirstPage(t *testing.T) {
	res := Run(makeItems(3), Params{Sort: SortTitleAsc, Page: 0}, 2)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, []string{"Item 001", "Item 002"}, titlesOf(res.Items))
}

func TestRun_DefaultPageSize(t *testing.T) {
	res := Run(makeItems(30), Params{Page: 1}, 0)
	assert.Len(t, res.Items, DefaultPageSize)
	assert.Equal(t, 3, res.TotalPages)
}

func TestParseSortKey(t *testing.T) {
	for _, key := range SortKeys {
		got, err := ParseSortKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}

	got, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortRatingDesc, got)

	_, err = ParseSortKey("popularity")
	assert.Error(t, err)
}

func TestSortKey_NextCycles(t *testing.T) {
	key := SortRatingDesc
	for range SortKeys {
		key = key.Next()
	}
	assert.Equal(t, SortRatingDesc, key)
}
