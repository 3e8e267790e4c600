package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// minYear excludes placeholder dates from the year list
const minYear = 1800

// Metadata serves the lookups that sit beside the collection: detail
// documents and genre labels.
type Metadata struct {
	client domain.CatalogClient
	store  domain.Store // nil disables the genre fallback
	logger *slog.Logger
}

// NewMetadata creates a metadata service
func NewMetadata(client domain.CatalogClient, store domain.Store, logger *slog.Logger) *Metadata {
	if logger == nil {
		logger = slog.Default()
	}
	return &Metadata{client: client, store: store, logger: logger}
}

// Details returns the detail document for item. Any failure falls back to the
// summary record already held, marked Partial.
func (m *Metadata) Details(ctx context.Context, item domain.Item) domain.Detail {
	detail, err := m.client.FetchDetail(ctx, item.ID)
	if err != nil {
		m.logger.Debug("detail unavailable, using summary", "id", item.ID, "error", err)
		return domain.SummaryDetail(item)
	}

	// The detail document may omit fields the summary has
	if detail.ID.IsZero() {
		detail.ID = item.ID
	}
	if detail.Title == "" {
		detail.Title = item.Title
	}
	if detail.Overview == "" {
		detail.Overview = item.Overview
	}
	if detail.Date() == "" {
		detail.ReleaseDate = item.ReleaseDate
		detail.FirstAirDate = item.FirstAirDate
	}
	if detail.Rating == 0 {
		detail.Rating = item.Rating
	}
	if detail.VoteCount == 0 {
		detail.VoteCount = item.VoteCount
	}
	if detail.PosterPath == "" {
		detail.PosterPath = item.PosterPath
	}
	return *detail
}

// Genres returns the normalized genre list. A fetch failure falls back to the
// last stored list when there is one.
func (m *Metadata) Genres(ctx context.Context) ([]domain.Genre, error) {
	raw, err := m.client.FetchGenres(ctx)
	if err != nil {
		if m.store != nil {
			if cached, ok := m.store.GetGenres(); ok {
				m.logger.Warn("genre fetch failed, using stored list", "error", err)
				return cached, nil
			}
		}
		m.logger.Error("failed to fetch genres", "error", err)
		return nil, err
	}

	genres := NormalizeGenres(raw)
	if m.store != nil {
		if err := m.store.SaveGenres(genres); err != nil {
			m.logger.Error("failed to save genres", "error", err)
		}
	}
	m.logger.Debug("fetched genres", "count", len(genres))
	return genres, nil
}

// NormalizeGenres trims names, drops entries with empty names and sorts by
// name using English collation.
func NormalizeGenres(raw []domain.Genre) []domain.Genre {
	genres := make([]domain.Genre, 0, len(raw))
	for _, g := range raw {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		genres = append(genres, domain.Genre{ID: g.ID, Name: name})
	}

	col := collate.New(language.English)
	slices.SortStableFunc(genres, func(a, b domain.Genre) int {
		return col.CompareString(a.Name, b.Name)
	})
	return genres
}

// GenreName returns the label for id, or "" when unknown.
func GenreName(genres []domain.Genre, id int) string {
	for _, g := range genres {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}

// Years returns every year from the newest to the oldest item date,
// inclusive and contiguous. Dates before 1801 are ignored.
func Years(items []domain.Item) []int {
	lo, hi := 0, 0
	for _, item := range items {
		y := domain.LeadingYear(item.Date())
		if y <= minYear {
			continue
		}
		if lo == 0 || y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	if hi == 0 {
		return nil
	}

	years := make([]int, 0, hi-lo+1)
	for y := hi; y >= lo; y-- {
		years = append(years, y)
	}
	return years
}
