package query

import (
	"slices"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSortTitle(t *testing.T) {
	assert.Equal(t, "til death", SortTitle("'Til Death"))
	assert.Equal(t, "12 angry men", SortTitle("  ...12 Angry Men "))
	assert.Equal(t, "", SortTitle("!!!"))
}

func TestSort_Title(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Title: "zodiac"},
		{ID: "2", Title: "\"Alien\""},
		{ID: "3", Title: "Élite"},
		{ID: "4", Title: "brazil"},
	}

	asc := slices.Clone(items)
	Sort(asc, SortTitleAsc)
	assert.Equal(t, []string{"\"Alien\"", "brazil", "Élite", "zodiac"}, titlesOf(asc))

	desc := slices.Clone(items)
	Sort(desc, SortTitleDesc)
	assert.Equal(t, []string{"zodiac", "Élite", "brazil", "\"Alien\""}, titlesOf(desc))
}

func TestSort_IsStable(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Title: "b", Rating: 7},
		{ID: "2", Title: "a", Rating: 8},
		{ID: "3", Title: "c", Rating: 7},
		{ID: "4", Title: "d", Rating: 8},
	}

	for _, key := range []SortKey{SortRatingDesc, SortRatingAsc} {
		got := slices.Clone(items)
		Sort(got, key)

		var ids []domain.ID
		for _, item := range got {
			ids = append(ids, item.ID)
		}
		if key == SortRatingDesc {
			assert.Equal(t, []domain.ID{"2", "4", "1", "3"}, ids)
		} else {
			assert.Equal(t, []domain.ID{"1", "3", "2", "4"}, ids)
		}
	}

	// Equal titles keep their order in both directions
	same := []domain.Item{{ID: "x", Title: "Up"}, {ID: "y", Title: "up"}}
	Sort(same, SortTitleDesc)
	assert.Equal(t, domain.ID("x"), same[0].ID)
}

func TestSort_Idempotent(t *testing.T) {
	items := []domain.Item{amelie, brazil, {ID: "9", Title: "Cube", ReleaseDate: "1997"}}

	for _, key := range SortKeys {
		once := slices.Clone(items)
		Sort(once, key)
		twice := slices.Clone(once)
		Sort(twice, key)
		assert.Equal(t, once, twice, key.String())
	}
}

func TestSort_YearTreatsMissingAsZero(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Title: "undated"},
		{ID: "2", Title: "old", ReleaseDate: "1985-02-20"},
		{ID: "3", Title: "new", FirstAirDate: "2001-01-01"},
		{ID: "4", Title: "garbage", ReleaseDate: "TBA"},
	}

	desc := slices.Clone(items)
	Sort(desc, SortYearDesc)
	assert.Equal(t, []string{"new", "old", "undated", "garbage"}, titlesOf(desc))

	asc := slices.Clone(items)
	Sort(asc, SortYearAsc)
	assert.Equal(t, []string{"undated", "garbage", "old", "new"}, titlesOf(asc))
}
