package cache

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// shardEnvelope is the body of /cache/popular_page_<n>.json
type shardEnvelope struct {
	Page    int             `json:"page,omitempty"`
	Results json.RawMessage `json:"results"`
}

// itemDTO is one record inside a shard. Movies carry title/release_date,
// TV records carry name/first_air_date.
type itemDTO struct {
	ID               domain.ID `json:"id"`
	Title            string    `json:"title,omitempty"`
	Name             string    `json:"name,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	GenreIDs         []flexInt `json:"genre_ids,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	FirstAirDate     string    `json:"first_air_date,omitempty"`
	VoteAverage      float64   `json:"vote_average,omitempty"`
	VoteCount        int       `json:"vote_count,omitempty"`
	Popularity       float64   `json:"popularity,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	PosterPath       string    `json:"poster_path,omitempty"`
	BackdropPath     string    `json:"backdrop_path,omitempty"`
}

// detailDTO is the body of /cache/movie_<id>.json
type detailDTO struct {
	itemDTO
	Runtime int        `json:"runtime,omitempty"`
	Tagline string     `json:"tagline,omitempty"`
	Status  string     `json:"status,omitempty"`
	Budget  int64      `json:"budget,omitempty"`
	Revenue int64      `json:"revenue,omitempty"`
	Genres  []genreDTO `json:"genres,omitempty"`
	Credits creditsDTO `json:"credits"`
}

type creditsDTO struct {
	Cast []struct {
		Name      string `json:"name"`
		Character string `json:"character,omitempty"`
	} `json:"cast,omitempty"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job,omitempty"`
	} `json:"crew,omitempty"`
}

// genreDTO is one entry of /cache/genres.json
type genreDTO struct {
	ID   flexInt `json:"id"`
	Name string  `json:"name"`
}

// genresEnvelope is the object form of /cache/genres.json
type genresEnvelope struct {
	Genres []genreDTO `json:"genres"`
}

// flexInt decodes an integer that may arrive as a JSON number or a numeric
// string. Anything else decodes without error and is marked invalid.
type flexInt struct {
	Value int
	Valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return nil
	}
	f.Value = int(n)
	f.Valid = true
	return nil
}
