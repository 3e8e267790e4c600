package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/query"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

type itemJSON struct {
	ID        domain.ID `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year,omitempty"`
	Date      string    `json:"date,omitempty"`
	Rating    float64   `json:"rating"`
	VoteCount int       `json:"vote_count,omitempty"`
	GenreIDs  []int     `json:"genre_ids"`
	Overview  string    `json:"overview,omitempty"`
	PosterURL string    `json:"poster_url,omitempty"`
	Favorite  bool      `json:"favorite"`
}

type pageJSON struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int        `json:"total"`
	Items      []itemJSON `json:"items"`
}

type detailJSON struct {
	itemJSON
	BackdropURL string              `json:"backdrop_url,omitempty"`
	Runtime     int                 `json:"runtime,omitempty"`
	Tagline     string              `json:"tagline,omitempty"`
	Status      string              `json:"status,omitempty"`
	Genres      []domain.Genre      `json:"genres,omitempty"`
	Directors   []string            `json:"directors,omitempty"`
	Cast        []domain.CastMember `json:"cast,omitempty"`
	Partial     bool                `json:"partial"`
}

func newItemJSON(item domain.Item, favs *favorites.Set, posterSize string) itemJSON {
	genreIDs := item.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}
	return itemJSON{
		ID:        item.ID,
		Title:     item.Title,
		Year:      item.Year(),
		Date:      item.Date(),
		Rating:    item.Rating,
		VoteCount: item.VoteCount,
		GenreIDs:  genreIDs,
		Overview:  item.Overview,
		PosterURL: cache.PosterURL(item.PosterPath, posterSize),
		Favorite:  favs.Contains(item.ID),
	}
}

func newPageJSON(result query.Result, favs *favorites.Set, posterSize string) pageJSON {
	items := make([]itemJSON, len(result.Items))
	for i, item := range result.Items {
		items[i] = newItemJSON(item, favs, posterSize)
	}
	return pageJSON{
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Total:      result.Total,
		Items:      items,
	}
}

func newDetailJSON(d domain.Detail, favs *favorites.Set, posterSize string) detailJSON {
	return detailJSON{
		itemJSON:    newItemJSON(d.Item, favs, posterSize),
		BackdropURL: cache.BackdropURL(d.BackdropPath, cache.DefaultBackdropSize),
		Runtime:     d.Runtime,
		Tagline:     d.Tagline,
		Status:      d.Status,
		Genres:      d.Genres,
		Directors:   d.Directors(),
		Cast:        d.TopCast(10),
		Partial:     d.Partial,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderItemTable renders items as a bordered table
func renderItemTable(items []domain.Item, favs *favorites.Set, genres []domain.Genre) string {
	rows := make([][]string, len(items))
	for i, item := range items {
		mark := ""
		if favs.Contains(item.ID) {
			mark = styles.FavoriteChar
		}
		year := ""
		if y := item.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		rows[i] = []string{
			mark,
			item.ID.String(),
			styles.Truncate(item.Title, 48),
			year,
			item.FormattedRating(),
			styles.Truncate(genreNames(genres, item.GenreIDs), 32),
		}
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(styles.Marquee).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 0 {
				return cell.Foreground(styles.Rose)
			}
			return cell
		}).
		Headers("", "ID", "TITLE", "YEAR", "RATING", "GENRES").
		Rows(rows...)

	return t.String()
}

func genreNames(genres []domain.Genre, ids []int) string {
	var names []string
	for _, id := range ids {
		if name := catalog.GenreName(genres, id); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
