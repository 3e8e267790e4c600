package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/spf13/cobra"
)

func (a *App) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBrowse(cmd.Context())
		},
	}
}

func (a *App) runBrowse(ctx context.Context) error {
	model := tui.NewModel(a.catalog, a.metadata, a.favorites, tui.Options{
		PageSize:   a.cfg.Browse.PageSize,
		Sort:       a.cfg.SortKey(),
		PosterSize: a.cfg.Images.PosterSize,
	}, a.logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
