package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
)

// Command factories for async operations

// reloadEvent is one step of a running reload. The last event has done set.
type reloadEvent struct {
	settled int
	total   int
	done    bool
	err     error
}

// ReloadCmd starts a full catalog reload in the background and returns its
// first progress event. Each CatalogProgressMsg carries the command that
// reads the next one.
func ReloadCmd(cat *catalog.Catalog, seq int) tea.Cmd {
	return func() tea.Msg {
		events := make(chan reloadEvent, 64)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			err := cat.Reload(ctx, func(settled, total int) {
				// Drop progress rather than stall the loader
				select {
				case events <- reloadEvent{settled: settled, total: total}:
				default:
				}
			})
			events <- reloadEvent{done: true, err: err}
			close(events)
		}()

		return readReload(seq, events)
	}
}

// readReload reads one event from the channel and embeds the continuation
func readReload(seq int, events <-chan reloadEvent) tea.Msg {
	ev, ok := <-events
	if !ok {
		return CatalogLoadedMsg{Seq: seq, Err: context.Canceled}
	}
	if ev.done {
		return CatalogLoadedMsg{Seq: seq, Err: ev.err}
	}
	return CatalogProgressMsg{
		Seq:     seq,
		Settled: ev.settled,
		Total:   ev.total,
		Next: func() tea.Msg {
			return readReload(seq, events)
		},
	}
}

// LoadGenresCmd fetches the genre list, falling back to the stored copy.
// With neither available it reports an ErrMsg.
func LoadGenresCmd(meta *catalog.Metadata) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		genres, err := meta.Genres(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "Genres unavailable"}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// LoadDetailCmd fetches the detail document for an item. It never fails:
// the summary stands in when the document is unavailable.
func LoadDetailCmd(meta *catalog.Metadata, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return DetailLoadedMsg{Detail: meta.Details(ctx, item)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
