package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxShards caps probing; the cache never holds more pages than this.
	DefaultMaxShards = 500

	// DefaultConcurrency bounds in-flight shard requests.
	DefaultConcurrency = 32
)

// Loader fetches every shard of the cache and merges them into one collection.
type Loader struct {
	client      domain.CatalogClient
	maxShards   int
	concurrency int
	logger      *slog.Logger
}

// NewLoader creates a loader. Non-positive limits fall back to the defaults.
func NewLoader(client domain.CatalogClient, maxShards, concurrency int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if maxShards <= 0 {
		maxShards = DefaultMaxShards
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Loader{
		client:      client,
		maxShards:   maxShards,
		concurrency: concurrency,
		logger:      logger,
	}
}

// shardResult is the settled outcome of one shard fetch
type shardResult struct {
	items []domain.Item
	err   error
}

// Load requests shards 1..maxShards, waits for all of them to settle and
// merges the ones that exist in index order. A missing shard is not an error.
// Load fails only when no shard could be read and at least one request
// failed for a reason other than absence.
func (l *Loader) Load(ctx context.Context, onProgress domain.ProgressFunc) ([]domain.Item, error) {
	results := make([]shardResult, l.maxShards)

	var (
		mu      sync.Mutex
		settled int
	)
	report := func() {
		if onProgress == nil {
			return
		}
		mu.Lock()
		settled++
		n := settled
		mu.Unlock()
		onProgress(n, l.maxShards)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i := range l.maxShards {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			items, err := l.client.FetchShard(gctx, i+1)
			results[i] = shardResult{items: items, err: err}
			report()
			// Shard failures never cancel siblings
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		shards   [][]domain.Item
		failures []error
		absent   int
	)
	for i, r := range results {
		switch {
		case r.err == nil:
			shards = append(shards, r.items)
		case errors.Is(r.err, domain.ErrShardNotFound):
			absent++
		default:
			l.logger.Warn("shard fetch failed", "shard", i+1, "error", r.err)
			failures = append(failures, r.err)
		}
	}

	if len(shards) == 0 && len(failures) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, errors.Join(failures...))
	}

	merged := Merge(shards)

	raw := 0
	for _, s := range shards {
		raw += len(s)
	}
	l.logger.Info("loaded catalog",
		"shards", len(shards),
		"absent", absent,
		"failed", len(failures),
		"raw", raw,
		"unique", len(merged),
	)

	return merged, nil
}
