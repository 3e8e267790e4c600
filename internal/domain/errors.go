package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrShardNotFound indicates the cache has no shard at the requested index.
	// It marks the end of the catalog and is not a failure.
	ErrShardNotFound = errors.New("cache shard not found")

	// ErrItemNotFound indicates the cache has no detail document for an item
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrServerOffline indicates the cache service is unreachable
	ErrServerOffline = errors.New("cache service is unreachable")

	// ErrLoadFailed indicates no shard could be loaded at all
	ErrLoadFailed = errors.New("catalog load failed")
)
