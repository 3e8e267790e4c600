package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/query"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/spf13/cobra"
)

type listOptions struct {
	search string
	genre  string
	year   string
	sort   string
	page   int
	json   bool
}

func (a *App) newListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Long: `List loads the catalog and prints one page of titles after applying
the search, genre and year filters and the sort order. A page past the
end shows the last page.`,
		Example: `  marquee list --search amelie
  marquee list --genre "science fiction" --year 198 --sort year.asc
  marquee list --page 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "text matched against titles and overviews")
	cmd.Flags().StringVarP(&opts.genre, "genre", "g", "", "genre id or name")
	cmd.Flags().StringVarP(&opts.year, "year", "y", "", "year or year prefix")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort key: "+sortKeyNames())
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")

	return cmd
}

func (a *App) runList(ctx context.Context, opts listOptions) error {
	sortKey := a.cfg.SortKey()
	if opts.sort != "" {
		key, err := query.ParseSortKey(opts.sort)
		if err != nil {
			return fmt.Errorf("%w (valid: %s)", err, sortKeyNames())
		}
		sortKey = key
	}

	category, genres, err := a.resolveCategory(ctx, opts.genre)
	if err != nil {
		return err
	}

	items, err := a.loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	browser := query.NewBrowser(a.cfg.Browse.PageSize, sortKey)
	browser.SetCollection(items)
	result := browser.Apply(query.Params{
		Search:   opts.search,
		Category: category,
		Year:     strings.TrimSpace(opts.year),
		Sort:     sortKey,
		Page:     max(1, opts.page),
	})

	if opts.json {
		return writeJSON(a.stdout, newPageJSON(result, a.favorites, a.cfg.Images.PosterSize))
	}

	if result.Total == 0 {
		fmt.Fprintln(a.stdout, "No titles match.")
		if suggestions := search.Suggest(opts.search, items, search.DefaultSuggestions); len(suggestions) > 0 {
			fmt.Fprintln(a.stdout, "\nDid you mean:")
			for _, item := range suggestions {
				fmt.Fprintf(a.stdout, "  %s (%s)\n", item.Title, item.ID)
			}
		}
		return nil
	}

	fmt.Fprintln(a.stdout, renderItemTable(result.Items, a.favorites, genres))
	fmt.Fprintf(a.stdout, "Page %d of %d · %d titles\n", result.Page, result.TotalPages, result.Total)
	return nil
}

// resolveCategory turns a --genre value into a category id. Names need the
// genre list; numeric ids are used as given. The fetched list is returned for
// labelling rows.
func (a *App) resolveCategory(ctx context.Context, genre string) (string, []domain.Genre, error) {
	genres, err := a.metadata.Genres(ctx)
	if err != nil {
		a.logger.Debug("genre labels unavailable", "error", err)
	}

	genre = strings.TrimSpace(genre)
	if genre == "" {
		return "", genres, nil
	}
	if _, err := strconv.Atoi(genre); err == nil {
		return genre, genres, nil
	}

	if len(genres) == 0 {
		return "", nil, fmt.Errorf("cannot resolve genre %q: genre list unavailable", genre)
	}
	g, ok := search.ResolveGenre(genre, genres)
	if !ok {
		return "", nil, fmt.Errorf("unknown genre %q", genre)
	}
	return strconv.Itoa(g.ID), genres, nil
}

func sortKeyNames() string {
	names := make([]string, len(query.SortKeys))
	for i, k := range query.SortKeys {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
