package domain

import "context"

// CatalogClient reads the cache service. Implemented by cache.Client.
type CatalogClient interface {
	// FetchShard returns the items of the 1-based shard index, or
	// ErrShardNotFound when the shard does not exist.
	FetchShard(ctx context.Context, index int) ([]Item, error)

	// FetchDetail returns the enriched document for one item.
	FetchDetail(ctx context.Context, id ID) (*Detail, error)

	// FetchGenres returns the raw genre list as served.
	FetchGenres(ctx context.Context) ([]Genre, error)
}

// ProgressFunc reports how many of total units have settled.
type ProgressFunc func(settled, total int)
