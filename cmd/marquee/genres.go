package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/spf13/cobra"
)

func (a *App) newGenresCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List genres and their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			genres, err := a.metadata.Genres(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading genres: %w", err)
			}

			if asJSON {
				return writeJSON(a.stdout, genres)
			}

			rows := make([][]string, len(genres))
			for i, g := range genres {
				rows[i] = []string{strconv.Itoa(g.ID), g.Name}
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
				Headers("ID", "NAME").
				Rows(rows...)
			fmt.Fprintln(a.stdout, t.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
