package cache

import "slices"

// ImageBaseURL is the CDN root for poster and backdrop paths.
const ImageBaseURL = "https://image.tmdb.org/t/p"

const (
	DefaultPosterSize   = "w342"
	DefaultBackdropSize = "w780"
)

var (
	posterSizes   = []string{"w92", "w154", "w185", "w342", "w500", "w780", "original"}
	backdropSizes = []string{"w300", "w780", "w1280", "original"}
)

// PosterURL returns the CDN URL for a poster path. Unknown sizes fall back to
// DefaultPosterSize; an empty path gives an empty URL.
func PosterURL(path, size string) string {
	return imageURL(path, size, posterSizes, DefaultPosterSize)
}

// BackdropURL returns the CDN URL for a backdrop path.
func BackdropURL(path, size string) string {
	return imageURL(path, size, backdropSizes, DefaultBackdropSize)
}

// ValidPosterSize reports whether size is one the CDN serves for posters.
func ValidPosterSize(size string) bool {
	return slices.Contains(posterSizes, size)
}

func imageURL(path, size string, allowed []string, fallback string) string {
	if path == "" {
		return ""
	}
	if !slices.Contains(allowed, size) {
		size = fallback
	}
	return ImageBaseURL + "/" + size + path
}
