package cache

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// mapItem converts a shard record to a domain item
func mapItem(dto itemDTO) domain.Item {
	title := dto.Title
	if title == "" {
		title = dto.Name
	}

	item := domain.Item{
		ID:               dto.ID,
		Title:            title,
		Overview:         dto.Overview,
		ReleaseDate:      dto.ReleaseDate,
		FirstAirDate:     dto.FirstAirDate,
		Rating:           dto.VoteAverage,
		VoteCount:        dto.VoteCount,
		Popularity:       dto.Popularity,
		OriginalLanguage: dto.OriginalLanguage,
		PosterPath:       dto.PosterPath,
		BackdropPath:     dto.BackdropPath,
	}

	for _, g := range dto.GenreIDs {
		if g.Valid {
			item.GenreIDs = append(item.GenreIDs, g.Value)
		}
	}

	return item
}

// mapDetail converts a detail document to a domain detail
func mapDetail(dto detailDTO) *domain.Detail {
	detail := &domain.Detail{
		Item:    mapItem(dto.itemDTO),
		Runtime: dto.Runtime,
		Tagline: dto.Tagline,
		Status:  dto.Status,
		Budget:  dto.Budget,
		Revenue: dto.Revenue,
		Genres:  mapGenres(dto.Genres),
	}

	// Detail documents list genres as objects rather than genre_ids
	if len(detail.GenreIDs) == 0 {
		for _, g := range detail.Genres {
			detail.GenreIDs = append(detail.GenreIDs, g.ID)
		}
	}

	for _, c := range dto.Credits.Cast {
		detail.Cast = append(detail.Cast, domain.CastMember{Name: c.Name, Character: c.Character})
	}
	for _, c := range dto.Credits.Crew {
		detail.Crew = append(detail.Crew, domain.CrewMember{Name: c.Name, Job: c.Job})
	}

	return detail
}

// mapGenres keeps entries whose id coerces to an integer. Names are passed
// through untouched; trimming and ordering belong to catalog.NormalizeGenres.
func mapGenres(dtos []genreDTO) []domain.Genre {
	genres := make([]domain.Genre, 0, len(dtos))
	for _, g := range dtos {
		if !g.ID.Valid {
			continue
		}
		genres = append(genres, domain.Genre{ID: g.ID.Value, Name: g.Name})
	}
	return genres
}
