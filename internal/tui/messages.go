package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogProgressMsg reports shard progress of a running reload. Next reads
// the following event from the same reload.
type CatalogProgressMsg struct {
	Seq     int
	Settled int
	Total   int
	Next    tea.Cmd
}

// CatalogLoadedMsg signals that a reload finished. Err is nil on success and
// catalog.ErrSuperseded when a newer reload replaced this one.
type CatalogLoadedMsg struct {
	Seq int
	Err error
}

// GenresLoadedMsg carries the normalized genre list
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// DetailLoadedMsg carries the detail for the open item
type DetailLoadedMsg struct {
	Detail domain.Detail
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
