package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/query"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Column widths of a list row
const (
	markWidth   = 2
	yearWidth   = 6
	ratingWidth = 6
	genreWidth  = 24
	pagerWidth  = 5
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateDetail:
		return m.renderDetail()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	browser, cursor := m.activeBrowser(), m.cursor()
	b.WriteString(m.renderList(browser.Result(), cursor))
	b.WriteString("\n")
	b.WriteString(renderPager(browser.Result()))

	body := b.String()
	footer := m.renderFooter()

	gap := m.Height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("marquee")

	tab := func(label string, n int, active bool) string {
		text := fmt.Sprintf("%s (%d)", label, n)
		if active {
			return styles.AccentStyle.Bold(true).Render(text)
		}
		return styles.DimStyle.Render(text)
	}
	tabs := tab("Popular", m.Browser.Result().Total, m.Pane == PaneCatalog) +
		styles.DimStyle.Render("  │  ") +
		tab("Favorites", m.Favorites.Len(), m.Pane == PaneFavorites)

	header := title + "  " + tabs

	state := m.Catalog.State()
	if state.FromSnapshot && !state.LoadedAt.IsZero() {
		header += styles.DimStyle.Render("  offline copy from " + state.LoadedAt.Format("Jan 2 15:04"))
	}
	return header
}

func (m Model) renderFilterBar() string {
	if m.State == StateSearching {
		return m.Search.View()
	}

	params := m.activeBrowser().Params()
	var badges []string

	if m.Pane == PaneCatalog {
		if params.Search != "" {
			badges = append(badges, styles.BadgeStyle.Render("search: "+params.Search))
		}
		if id, err := strconv.Atoi(params.Category); err == nil {
			name := catalog.GenreName(m.Genres, id)
			if name == "" {
				name = params.Category
			}
			badges = append(badges, styles.BadgeStyle.Render("genre: "+name))
		}
		if params.Year != "" {
			badges = append(badges, styles.BadgeStyle.Render("year: "+params.Year))
		}
	}
	badges = append(badges, styles.DimBadgeStyle.Render("sort: "+params.Sort.Label()))

	return strings.Join(badges, " ")
}

func (m Model) renderList(result query.Result, cursor int) string {
	if len(result.Items) == 0 {
		switch {
		case m.Loading && len(m.Catalog.Items()) == 0:
			return styles.DimStyle.Render("  Fetching the catalog...")
		case m.Pane == PaneFavorites:
			return styles.DimStyle.Render("  No favorites yet. Press f on a title to add it.")
		default:
			return styles.DimStyle.Render("  Nothing matches these filters.")
		}
	}

	width := max(40, m.Width)
	titleWidth := max(10, width-markWidth-yearWidth-ratingWidth-genreWidth-4)

	rows := make([]string, len(result.Items))
	for i, item := range result.Items {
		mark := "  "
		if m.Favorites.Contains(item.ID) {
			mark = styles.FavoriteChar + " "
		}

		year := "-"
		if y := item.Year(); y > 0 {
			year = strconv.Itoa(y)
		}

		parts := []styles.RowPart{
			{Text: mark, Foreground: favoriteColor(m.Favorites.Contains(item.ID))},
			{Text: styles.Pad(styles.Truncate(item.Title, titleWidth), titleWidth)},
			{Text: styles.Pad(year, yearWidth)},
			{Text: styles.Pad("★ "+item.FormattedRating(), ratingWidth+2)},
			{Text: styles.Truncate(m.genreList(item), genreWidth)},
		}
		rows[i] = styles.RenderListRow(parts, i == cursor, width)
	}
	return strings.Join(rows, "\n")
}

func favoriteColor(on bool) *lipgloss.Color {
	if !on {
		return nil
	}
	c := styles.Rose
	return &c
}

// genreList names an item's genres, skipping IDs the genre list lacks
func (m Model) genreList(item domain.Item) string {
	var names []string
	for _, id := range item.GenreIDs {
		if name := catalog.GenreName(m.Genres, id); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func renderPager(result query.Result) string {
	summary := styles.DimStyle.Render(fmt.Sprintf("  Page %d of %d · %d titles", result.Page, result.TotalPages, result.Total))

	window := query.PageWindow(result.Page, result.TotalPages, pagerWidth)
	if window == nil {
		return summary
	}

	parts := make([]string, 0, len(window)+2)
	if result.Page > 1 {
		parts = append(parts, styles.PageStyle.Render("‹"))
	}
	for _, n := range window {
		if n == result.Page {
			parts = append(parts, styles.CurrentPageStyle.Render(strconv.Itoa(n)))
		} else {
			parts = append(parts, styles.PageStyle.Render(strconv.Itoa(n)))
		}
	}
	if result.Page < result.TotalPages {
		parts = append(parts, styles.PageStyle.Render("›"))
	}
	return " " + strings.Join(parts, "") + summary
}

// renderFooter renders the status line and the key hints
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		status := "Loading catalog..."
		if m.ProgressTotal > 0 {
			status = fmt.Sprintf("Loading shards %d/%d ", m.Progress, m.ProgressTotal) +
				styles.RenderProgressBar(m.Progress, m.ProgressTotal, 20)
		}
		left = m.Spinner.View() + " " + styles.DimStyle.Render(status)
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	case m.Catalog.State().Err != nil:
		left = styles.ErrorStyle.Render("Last reload failed, press r to retry")
	}

	return left + "\n" + m.Help.View(Keys)
}

// renderDetail renders the detail overlay for the open item
func (m Model) renderDetail() string {
	if m.Detail == nil {
		return ""
	}
	d := *m.Detail
	width := max(40, min(m.Width-8, 90))

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(d.Title))
	if m.Favorites.Contains(d.ID) {
		b.WriteString(" " + styles.FavoriteMark)
	}
	b.WriteString("\n")

	var facts []string
	if y := d.Year(); y > 0 {
		facts = append(facts, strconv.Itoa(y))
	}
	if rt := d.FormattedRuntime(); rt != "" {
		facts = append(facts, rt)
	}
	facts = append(facts, "★ "+d.FormattedRating())
	if d.VoteCount > 0 {
		facts = append(facts, fmt.Sprintf("%d votes", d.VoteCount))
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(facts, " · ")))
	b.WriteString("\n")

	if d.Tagline != "" {
		b.WriteString(styles.AccentStyle.Italic(true).Render(d.Tagline))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if genres := m.detailGenres(d); genres != "" {
		b.WriteString(styles.DimStyle.Render("Genres: ") + genres + "\n")
	}
	if directors := d.Directors(); len(directors) > 0 {
		b.WriteString(styles.DimStyle.Render("Director: ") + strings.Join(directors, ", ") + "\n")
	}
	if cast := d.TopCast(5); len(cast) > 0 {
		names := make([]string, len(cast))
		for i, c := range cast {
			names[i] = c.Name
		}
		b.WriteString(styles.DimStyle.Render("Cast: ") + strings.Join(names, ", ") + "\n")
	}

	if d.Overview != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(d.Overview, width)))
		b.WriteString("\n")
	}

	if poster := cache.PosterURL(d.PosterPath, m.PosterSize); poster != "" {
		b.WriteString("\n" + styles.DimStyle.Render("Poster: "+poster) + "\n")
	}

	switch {
	case m.DetailLoading:
		b.WriteString("\n" + m.Spinner.View() + styles.DimStyle.Render(" fetching details..."))
	case d.Partial:
		b.WriteString("\n" + styles.DimStyle.Render("Full details unavailable, showing summary."))
	}

	b.WriteString("\n\n" + styles.DimStyle.Render("f favorite · esc back"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Width(width+4).Render(b.String()))
}

func (m Model) detailGenres(d domain.Detail) string {
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		return strings.Join(names, ", ")
	}
	return m.genreList(d.Item)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	body := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(Keys) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen > 0 && lineLen+wordLen+1 > width {
			result.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
