package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/spf13/cobra"
)

func (a *App) newShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

// runShow prints the detail document for id. The catalog supplies the
// summary used when the document is missing; an id found in neither is an
// error.
func (a *App) runShow(ctx context.Context, raw string, asJSON bool) error {
	id := domain.ParseID(raw)
	if id.IsZero() {
		return fmt.Errorf("invalid id %q", raw)
	}

	items, err := a.loadCatalog(ctx)
	if err != nil {
		a.logger.Warn("showing detail without catalog", "error", err)
	}

	summary := domain.Item{ID: id}
	found := false
	for _, item := range items {
		if item.ID == id {
			summary, found = item, true
			break
		}
	}

	detail := a.metadata.Details(ctx, summary)
	if detail.Partial && !found {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}

	if asJSON {
		return writeJSON(a.stdout, newDetailJSON(detail, a.favorites, a.cfg.Images.PosterSize))
	}

	fmt.Fprintln(a.stdout, a.renderDetail(detail))
	return nil
}

func (a *App) renderDetail(d domain.Detail) string {
	var b strings.Builder

	title := styles.TitleStyle.Render(d.Title)
	if a.favorites.Contains(d.ID) {
		title += " " + styles.FavoriteMark
	}
	b.WriteString(title + "\n")

	var facts []string
	if y := d.Year(); y > 0 {
		facts = append(facts, fmt.Sprint(y))
	}
	if rt := d.FormattedRuntime(); rt != "" {
		facts = append(facts, rt)
	}
	facts = append(facts, "★ "+d.FormattedRating())
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(facts, " · ")) + "\n")

	if d.Tagline != "" {
		b.WriteString(styles.AccentStyle.Render(d.Tagline) + "\n")
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		b.WriteString("Genres: " + strings.Join(names, ", ") + "\n")
	}
	if directors := d.Directors(); len(directors) > 0 {
		b.WriteString("Director: " + strings.Join(directors, ", ") + "\n")
	}
	if cast := d.TopCast(5); len(cast) > 0 {
		parts := make([]string, len(cast))
		for i, c := range cast {
			parts[i] = c.Name
			if c.Character != "" {
				parts[i] += " (" + c.Character + ")"
			}
		}
		b.WriteString("Cast: " + strings.Join(parts, ", ") + "\n")
	}
	if d.Overview != "" {
		b.WriteString("\n" + d.Overview + "\n")
	}
	if poster := cache.PosterURL(d.PosterPath, a.cfg.Images.PosterSize); poster != "" {
		b.WriteString("\n" + styles.DimStyle.Render(poster) + "\n")
	}
	if d.Partial {
		b.WriteString("\n" + styles.DimStyle.Render("Full details unavailable, showing summary.") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
