package domain

import "time"

// Snapshot is the last successfully loaded collection.
type Snapshot struct {
	Items     []Item
	FetchedAt time.Time
}

// Store handles durable local state (BoltDB + memory).
type Store interface {
	// === Selection ===
	// GetSelection returns false when nothing is stored or the stored value
	// cannot be decoded.
	GetSelection() ([]ID, bool)
	SaveSelection(ids []ID) error

	// === Collection snapshot ===
	GetSnapshot() (Snapshot, bool)
	SaveSnapshot(snap Snapshot) error

	// === Genres ===
	GetGenres() ([]Genre, bool)
	SaveGenres(genres []Genre) error

	Close() error
}
