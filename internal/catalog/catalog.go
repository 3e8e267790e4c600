package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// ErrSuperseded is returned by a reload whose results were discarded because
// a newer reload started while it was in flight.
var ErrSuperseded = errors.New("reload superseded by a newer reload")

// State is a consistent view of the catalog for presentation.
type State struct {
	Loading      bool
	Err          error
	Items        []domain.Item // Never mutated after publication
	LoadedAt     time.Time
	FromSnapshot bool
}

// Catalog owns the current collection and its loading state. The collection
// is replaced wholesale; readers see either the old or the new one.
type Catalog struct {
	loader *Loader
	store  domain.Store // nil disables snapshots
	logger *slog.Logger

	mu       sync.RWMutex
	state    State
	gen      uint64
	inFlight context.CancelFunc

	snapMu   sync.Mutex
	savedGen uint64 // Generation of the last snapshot written
}

// New creates an empty catalog. When store is non-nil every successful load
// is saved as a snapshot and Warm can seed the collection from it.
func New(loader *Loader, store domain.Store, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{loader: loader, store: store, logger: logger}
}

// State returns the current state.
func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Items returns the current collection.
func (c *Catalog) Items() []domain.Item {
	return c.State().Items
}

// Warm seeds an empty catalog from the stored snapshot. It reports whether a
// snapshot was applied.
func (c *Catalog) Warm() bool {
	if c.store == nil {
		return false
	}
	snap, ok := c.store.GetSnapshot()
	if !ok || len(snap.Items) == 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Items != nil {
		return false
	}
	c.state.Items = snap.Items
	c.state.LoadedAt = snap.FetchedAt
	c.state.FromSnapshot = true
	c.logger.Info("warmed catalog from snapshot", "count", len(snap.Items), "fetchedAt", snap.FetchedAt)
	return true
}

// Reload runs a full load and publishes the result. A newer Reload cancels
// this one; the superseded call returns ErrSuperseded and leaves state alone.
// On failure the previous collection is kept and the error is recorded.
func (c *Catalog) Reload(ctx context.Context, onProgress domain.ProgressFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.inFlight != nil {
		c.inFlight()
	}
	c.gen++
	gen := c.gen
	c.inFlight = cancel
	c.state.Loading = true
	c.state.Err = nil
	c.mu.Unlock()

	items, err := c.loader.Load(ctx, onProgress)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded reload", "generation", gen)
		return ErrSuperseded
	}
	c.inFlight = nil
	c.state.Loading = false
	if err != nil {
		c.state.Err = err
		c.mu.Unlock()
		c.logger.Error("catalog reload failed", "error", err)
		return err
	}
	now := time.Now()
	c.state.Items = items
	c.state.LoadedAt = now
	c.state.FromSnapshot = false
	c.mu.Unlock()

	c.saveSnapshot(gen, domain.Snapshot{Items: items, FetchedAt: now})

	return nil
}

// saveSnapshot persists the collection published by generation gen unless a
// newer generation has already been saved.
func (c *Catalog) saveSnapshot(gen uint64, snap domain.Snapshot) {
	if c.store == nil {
		return
	}
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	if gen < c.savedGen {
		c.logger.Debug("skipping stale snapshot", "generation", gen, "saved", c.savedGen)
		return
	}
	if err := c.store.SaveSnapshot(snap); err != nil {
		c.logger.Error("failed to save snapshot", "error", err)
		return
	}
	c.savedGen = gen
}
