package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_DateFallsBackToFirstAirDate(t *testing.T) {
	assert.Equal(t, "2001-04-25", Item{ReleaseDate: "2001-04-25", FirstAirDate: "1999-01-01"}.Date())
	assert.Equal(t, "1999-01-01", Item{FirstAirDate: "1999-01-01"}.Date())
	assert.Equal(t, "", Item{}.Date())
}

func TestLeadingYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1985-02-20", 1985},
		{"2001", 2001},
		{"19", 19},
		{"19ab-01-01", 19},
		{"", 0},
		{"n/a", 0},
		{"-", 0},
		{"abcd-12", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LeadingYear(tt.in))
		})
	}
}

func TestItem_HasGenre(t *testing.T) {
	item := Item{GenreIDs: []int{18, 35}}
	assert.True(t, item.HasGenre(35))
	assert.False(t, item.HasGenre(28))
}

func TestDetail_DirectorsAndCast(t *testing.T) {
	d := Detail{
		Cast: []CastMember{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		Crew: []CrewMember{
			{Name: "Jean-Pierre Jeunet", Job: "Director"},
			{Name: "Someone", Job: "Editor"},
		},
	}

	assert.Equal(t, []string{"Jean-Pierre Jeunet"}, d.Directors())
	assert.Len(t, d.TopCast(2), 2)
	assert.Len(t, d.TopCast(10), 3)
}

func TestDetail_FormattedRuntime(t *testing.T) {
	assert.Equal(t, "2h 2m", Detail{Runtime: 122}.FormattedRuntime())
	assert.Equal(t, "45m", Detail{Runtime: 45}.FormattedRuntime())
	assert.Equal(t, "", Detail{}.FormattedRuntime())
}
