package catalog

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMerge_FirstOccurrenceWins(t *testing.T) {
	first := movie("2", "Brazil")
	second := movie("2", "Brazil (director's cut)")

	merged := Merge([][]domain.Item{
		{movie("1", "Amelie"), first},
		{second, movie("3", "Chinatown")},
	})

	ids := make([]domain.ID, len(merged))
	for i, m := range merged {
		ids[i] = m.ID
	}
	assert.Equal(t, []domain.ID{"1", "2", "3"}, ids)
	assert.Equal(t, "Brazil", merged[1].Title)
}

func TestMerge_DropsItemsWithoutIDOrPoster(t *testing.T) {
	noPoster := movie("4", "Dune")
	noPoster.PosterPath = ""

	merged := Merge([][]domain.Item{{
		{Title: "anonymous", PosterPath: "/x.jpg"},
		noPoster,
		movie("5", "Eraserhead"),
	}})

	assert.Len(t, merged, 1)
	assert.Equal(t, domain.ID("5"), merged[0].ID)
}

func TestMerge_NoPosterDoesNotClaimID(t *testing.T) {
	noPoster := movie("6", "Fargo")
	noPoster.PosterPath = ""

	merged := Merge([][]domain.Item{{noPoster}, {movie("6", "Fargo")}})

	assert.Len(t, merged, 1)
	assert.Equal(t, "/6.jpg", merged[0].PosterPath)
}

func TestMerge_LengthBound(t *testing.T) {
	shards := [][]domain.Item{
		{movie("1", "a"), movie("1", "a"), movie("2", "b")},
		{movie("2", "b"), movie("3", "c")},
		nil,
	}
	assert.LessOrEqual(t, len(Merge(shards)), 5)
	assert.Empty(t, Merge(nil))
}
