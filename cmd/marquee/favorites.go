package main

import (
	"context"
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/cobra"
)

func (a *App) newFavoritesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or change favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFavoritesList(cmd.Context(), asJSON)
		},
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorites in catalog order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runFavoritesList(cmd.Context(), asJSON)
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Add a title to favorites, or remove it if present",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runFavoritesToggle(args[0])
			},
		},
	)

	return cmd
}

// runFavoritesList prints the favorites found in the catalog. IDs the
// catalog no longer contains are listed separately; they stay selected.
func (a *App) runFavoritesList(ctx context.Context, asJSON bool) error {
	if a.favorites.Len() == 0 {
		if asJSON {
			return writeJSON(a.stdout, []itemJSON{})
		}
		fmt.Fprintln(a.stdout, "No favorites yet. Add one with: marquee favorites toggle <id>")
		return nil
	}

	items, err := a.loadCatalog(ctx)
	if err != nil {
		a.logger.Warn("favorites listed without catalog", "error", err)
		fmt.Fprintf(a.stderr, "warning: catalog unavailable (%v); showing ids only\n", err)
	}

	projected := a.favorites.Project(items)

	if asJSON {
		out := make([]itemJSON, len(projected))
		for i, item := range projected {
			out[i] = newItemJSON(item, a.favorites, a.cfg.Images.PosterSize)
		}
		return writeJSON(a.stdout, out)
	}

	if len(projected) > 0 {
		genres, _ := a.metadata.Genres(ctx)
		fmt.Fprintln(a.stdout, renderItemTable(projected, a.favorites, genres))
	}

	found := make(map[domain.ID]bool, len(projected))
	for _, item := range projected {
		found[item.ID] = true
	}
	var missing []domain.ID
	for _, id := range a.favorites.All() {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(a.stdout, "Not in the current catalog: %v\n", missing)
	}
	return nil
}

func (a *App) runFavoritesToggle(raw string) error {
	id := domain.ParseID(raw)
	if id.IsZero() {
		return fmt.Errorf("invalid id %q", raw)
	}

	if a.favorites.Toggle(id) {
		fmt.Fprintf(a.stdout, "Added %s to favorites\n", id)
	} else {
		fmt.Fprintf(a.stdout, "Removed %s from favorites\n", id)
	}
	return nil
}
