package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/store"
	"golang.org/x/term"
)

// App holds the services shared by every command. They are built in setup,
// after flags are parsed, and released in teardown.
type App struct {
	version    string
	configPath string
	stdout     io.Writer
	stderr     io.Writer

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	store     *store.Store
	client    *cache.Client
	catalog   *catalog.Catalog
	metadata  *catalog.Metadata
	favorites *favorites.Set

	progressMu   sync.Mutex
	progressHigh int
}

func newApp(version string, stdout, stderr io.Writer) *App {
	return &App{version: version, stdout: stdout, stderr: stderr}
}

// setup loads configuration and wires the services
func (a *App) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, closer, err := log.Setup(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = log.NullLogger(), io.NopCloser(nil)
	}
	a.logger, a.logCloser = logger, closer
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", a.version, "cache", cfg.Cache.URL)

	a.client = cache.NewClient(cfg.Cache.URL, cfg.Cache.Timeout, logger)

	st, err := store.New(cfg.Storage.Dir, a.client.BaseURL())
	if err != nil {
		// Another instance may hold the database lock
		logger.Warn("storage unavailable, keeping state in memory", "error", err, "dir", cfg.Storage.Dir)
		fmt.Fprintf(a.stderr, "warning: storage unavailable (%v); favorites will not be saved\n", err)
		st, _ = store.New("", "")
	}
	a.store = st

	var snapshots domain.Store
	if cfg.Storage.OfflineSnapshot {
		snapshots = st
	}
	loader := catalog.NewLoader(a.client, cfg.Cache.MaxShards, cfg.Cache.Concurrency, logger)
	a.catalog = catalog.New(loader, snapshots, logger)
	a.metadata = catalog.NewMetadata(a.client, st, logger)
	a.favorites = favorites.Open(st, logger)

	return nil
}

// teardown releases the store and the log file
func (a *App) teardown() error {
	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	if a.logger != nil {
		a.logger.Info("shutting down")
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loadCatalog reloads the catalog for a one-shot command. When the reload
// fails and an offline snapshot exists the snapshot is used with a warning.
func (a *App) loadCatalog(ctx context.Context) ([]domain.Item, error) {
	a.catalog.Warm()

	var progress domain.ProgressFunc
	if isTerminal(a.stderr) {
		progress = a.printProgress
	}

	a.progressHigh = 0
	err := a.catalog.Reload(ctx, progress)
	if progress != nil {
		fmt.Fprint(a.stderr, "\r\033[K")
	}

	state := a.catalog.State()
	if err != nil {
		if len(state.Items) == 0 {
			return nil, err
		}
		fmt.Fprintf(a.stderr, "warning: reload failed (%v); using offline copy from %s\n",
			err, state.LoadedAt.Format(time.RFC822))
	}
	return state.Items, nil
}

// printProgress is called from loader goroutines; it only ever counts up
func (a *App) printProgress(settled, total int) {
	a.progressMu.Lock()
	defer a.progressMu.Unlock()
	if settled <= a.progressHigh {
		return
	}
	a.progressHigh = settled
	fmt.Fprintf(a.stderr, "\rLoading shards %d/%d", settled, total)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
