package domain

import (
	"fmt"
	"strconv"
)

// Item is one catalog record as served by the cache (a movie or a TV show).
type Item struct {
	ID               ID      // Dedup key
	Title            string  // Display title ("name" for TV records)
	Overview         string  // Plot synopsis
	GenreIDs         []int   // Category identifiers
	ReleaseDate      string  // YYYY-MM-DD for movies
	FirstAirDate     string  // YYYY-MM-DD for TV shows
	Rating           float64 // Community rating (0-10)
	VoteCount        int
	Popularity       float64
	OriginalLanguage string

	// Image paths relative to the image CDN
	PosterPath   string
	BackdropPath string
}

// Date returns the release date, falling back to the first air date.
func (i Item) Date() string {
	if i.ReleaseDate != "" {
		return i.ReleaseDate
	}
	return i.FirstAirDate
}

// Year returns the year encoded in the first four characters of Date, or 0.
func (i Item) Year() int {
	return LeadingYear(i.Date())
}

// HasGenre reports whether the item is tagged with the genre.
func (i Item) HasGenre(id int) bool {
	for _, g := range i.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// FormattedRating returns the rating with one decimal, or "-" when unrated.
func (i Item) FormattedRating() string {
	if i.Rating <= 0 {
		return "-"
	}
	return strconv.FormatFloat(i.Rating, 'f', 1, 64)
}

// LeadingYear parses the integer prefix of the first four characters of a
// date string. "1999-03-31" gives 1999, "19" gives 19, "" and "n/a" give 0.
func LeadingYear(date string) int {
	if len(date) > 4 {
		date = date[:4]
	}
	end := 0
	if end < len(date) && (date[end] == '-' || date[end] == '+') {
		end++
	}
	digits := end
	for end < len(date) && date[end] >= '0' && date[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(date[:end])
	if err != nil {
		return 0
	}
	return n
}

// Genre labels a category identifier.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one billed actor in a detail document.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// CrewMember is one crew credit in a detail document.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job,omitempty"`
}

// Detail is the enriched document for a single item.
type Detail struct {
	Item

	Runtime int // Minutes
	Tagline string
	Status  string
	Budget  int64
	Revenue int64
	Genres  []Genre
	Cast    []CastMember
	Crew    []CrewMember

	// Partial is set when the detail document could not be fetched and only
	// the summary record is available.
	Partial bool
}

// SummaryDetail wraps a summary item as a partial detail.
func SummaryDetail(item Item) Detail {
	return Detail{Item: item, Partial: true}
}

// Directors returns the names of crew members credited as director.
func (d Detail) Directors() []string {
	var names []string
	for _, c := range d.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return names
}

// TopCast returns at most n cast members in billing order.
func (d Detail) TopCast(n int) []CastMember {
	if n < 0 || n >= len(d.Cast) {
		return d.Cast
	}
	return d.Cast[:n]
}

// FormattedRuntime returns the runtime in a human-readable format
func (d Detail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
