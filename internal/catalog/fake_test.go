package catalog

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// fakeClient is an in-memory domain.CatalogClient
type fakeClient struct {
	shards map[int][]domain.Item
	errs   map[int]error
	delay  func(index int) time.Duration

	// When block is set, shard fetches wait for cancellation
	block       atomic.Bool
	started     chan struct{}
	startedOnce sync.Once

	calls atomic.Int32

	detail    *domain.Detail
	detailErr error
	genres    []domain.Genre
	genresErr error
}

func newFakeClient(shards map[int][]domain.Item) *fakeClient {
	return &fakeClient{
		shards:  shards,
		errs:    map[int]error{},
		started: make(chan struct{}),
	}
}

func (f *fakeClient) FetchShard(ctx context.Context, index int) ([]domain.Item, error) {
	f.calls.Add(1)
	f.startedOnce.Do(func() { close(f.started) })

	if f.block.Load() {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.delay != nil {
		select {
		case <-time.After(f.delay(index)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.errs[index]; ok {
		return nil, err
	}
	if items, ok := f.shards[index]; ok {
		return items, nil
	}
	return nil, domain.ErrShardNotFound
}

func (f *fakeClient) FetchDetail(ctx context.Context, id domain.ID) (*domain.Detail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d := *f.detail
	return &d, nil
}

func (f *fakeClient) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	return f.genres, f.genresErr
}

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func movie(id, title string) domain.Item {
	return domain.Item{ID: domain.ID(id), Title: title, PosterPath: "/" + id + ".jpg"}
}
