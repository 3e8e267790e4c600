package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/query"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateDetail
	StateHelp
)

// Pane selects which list has focus
type Pane int

const (
	PaneCatalog Pane = iota
	PaneFavorites
)

// Options are the browsing defaults taken from configuration
type Options struct {
	PageSize   int
	Sort       query.SortKey
	PosterSize string
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Pane   Pane
	Ready  bool
	Width  int
	Height int

	// Services
	Catalog   *catalog.Catalog
	Metadata  *catalog.Metadata
	Favorites *favorites.Set
	Logger    *slog.Logger

	// Query state, one browser per pane
	Browser    *query.Browser
	FavBrowser *query.Browser
	Cursor     int
	FavCursor  int

	// Filter choices
	Genres []domain.Genre
	Years  []int

	// UI Components
	Search  textinput.Model
	Spinner spinner.Model
	Help    help.Model

	// Loading
	Loading       bool
	Progress      int
	ProgressTotal int
	reloadSeq     int

	// Detail overlay
	Detail        *domain.Detail
	DetailLoading bool
	PosterSize    string

	// Status bar
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates the application model. The catalog is seeded from its
// snapshot when one exists so the first frame has content.
func NewModel(cat *catalog.Catalog, meta *catalog.Metadata, favs *favorites.Set, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Prompt = styles.FilterPromptStyle.Render("/ ")
	search.Placeholder = "search titles and overviews"
	search.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		State:      StateBrowsing,
		Pane:       PaneCatalog,
		Catalog:    cat,
		Metadata:   meta,
		Favorites:  favs,
		Logger:     logger,
		Browser:    query.NewBrowser(opts.PageSize, opts.Sort),
		FavBrowser: query.NewBrowser(opts.PageSize, opts.Sort),
		Search:     search,
		Spinner:    sp,
		Help:       help.New(),
		PosterSize: opts.PosterSize,
		Loading:    true,
		reloadSeq:  1,
	}

	if cat.Warm() {
		m.refreshCollections()
	}
	return m
}

// Init starts the first reload and the genre fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ReloadCmd(m.Catalog, m.reloadSeq),
		LoadGenresCmd(m.Metadata),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.Loading && !m.DetailLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case CatalogProgressMsg:
		if msg.Seq == m.reloadSeq {
			// Shards settle concurrently; keep the high-water mark
			m.Progress = max(m.Progress, msg.Settled)
			m.ProgressTotal = msg.Total
		}
		return m, msg.Next

	case CatalogLoadedMsg:
		if msg.Seq != m.reloadSeq || errors.Is(msg.Err, catalog.ErrSuperseded) {
			return m, nil
		}
		m.Loading = false
		m.refreshCollections()
		if msg.Err != nil {
			cmd := m.setStatus("Load failed: "+msg.Err.Error(), true, 5*time.Second)
			return m, cmd
		}
		cmd := m.setStatus(fmt.Sprintf("Loaded %d titles", len(m.Catalog.Items())), false, 3*time.Second)
		return m, cmd

	case GenresLoadedMsg:
		m.Genres = msg.Genres
		return m, nil

	case DetailLoadedMsg:
		if m.State == StateDetail && m.Detail != nil && m.Detail.ID == msg.Detail.ID {
			d := msg.Detail
			m.Detail = &d
			m.DetailLoading = false
		}
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.Logger.Error("tui error", "error", msg.Err, "context", msg.Context)
		cmd := m.setStatus(msg.Error(), true, 5*time.Second)
		return m, cmd
	}

	return m, nil
}

// handleKeyMsg routes a key press by application state
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.State {
	case StateSearching:
		return m.handleSearchKey(msg)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateDetail:
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Pane = PaneCatalog
		m.State = StateSearching
		m.Search.SetValue(m.Browser.Params().Search)
		m.Search.CursorEnd()
		cmd := m.Search.Focus()
		return m, cmd

	case key.Matches(msg, Keys.Genre):
		m.Pane = PaneCatalog
		m.Browser.SetCategory(m.nextGenre())
		m.Cursor = 0
		return m, nil

	case key.Matches(msg, Keys.Year):
		m.Pane = PaneCatalog
		m.Browser.SetYear(m.nextYear())
		m.Cursor = 0
		return m, nil

	case key.Matches(msg, Keys.Sort):
		b := m.activeBrowser()
		b.SetSort(b.Params().Sort.Next())
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Clear):
		sort := m.Browser.Params().Sort
		m.Browser.Apply(query.Params{Sort: sort, Page: 1})
		m.Cursor = 0
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		m.activeBrowser().PrevPage()
		m.setCursor(0)
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		m.activeBrowser().NextPage()
		m.setCursor(0)
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.setCursor(m.cursor() - 1)
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.setCursor(m.cursor() + 1)
		return m, nil

	case key.Matches(msg, Keys.Pane):
		if m.Pane == PaneCatalog {
			m.Pane = PaneFavorites
		} else {
			m.Pane = PaneCatalog
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, Keys.Enter):
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		d := domain.SummaryDetail(item)
		m.Detail = &d
		m.DetailLoading = true
		m.State = StateDetail
		return m, tea.Batch(LoadDetailCmd(m.Metadata, item), m.Spinner.Tick)

	case key.Matches(msg, Keys.Reload):
		return m.startReload()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.State = StateBrowsing
		m.Search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.State = StateBrowsing
		m.Search.Blur()
		m.Search.SetValue("")
		m.Browser.SetSearch("")
		m.Cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	m.Browser.SetSearch(m.Search.Value())
	m.Cursor = 0
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, Keys.Favorite):
		if m.Detail != nil {
			m.applyToggle(m.Detail.ID, m.Detail.Title)
		}
		return m, nil
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Enter), key.Matches(msg, Keys.Quit):
		m.State = StateBrowsing
		m.Detail = nil
		m.DetailLoading = false
		return m, nil
	}
	return m, nil
}

func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	item, ok := m.selected()
	if !ok {
		return m, nil
	}
	cmd := m.applyToggle(item.ID, item.Title)
	return m, cmd
}

// applyToggle flips membership and rebuilds the favorites pane
func (m *Model) applyToggle(id domain.ID, title string) tea.Cmd {
	added := m.Favorites.Toggle(id)
	m.FavBrowser.SetCollection(m.Favorites.Project(m.Catalog.Items()))
	m.clampCursor()

	if added {
		return m.setStatus("Added "+title+" to favorites", false, 2*time.Second)
	}
	return m.setStatus("Removed "+title+" from favorites", false, 2*time.Second)
}

// startReload begins a new reload; an older one still running is superseded
func (m Model) startReload() (tea.Model, tea.Cmd) {
	m.reloadSeq++
	m.Loading = true
	m.Progress = 0
	m.ProgressTotal = 0
	return m, tea.Batch(ReloadCmd(m.Catalog, m.reloadSeq), m.Spinner.Tick)
}

// refreshCollections pushes the catalog's items into both browsers
func (m *Model) refreshCollections() {
	items := m.Catalog.Items()
	m.Browser.SetCollection(items)
	m.FavBrowser.SetCollection(m.Favorites.Project(items))
	m.Years = catalog.Years(items)
	m.clampCursor()
}

func (m *Model) setStatus(text string, isErr bool, ttl time.Duration) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(ttl)
}

// nextGenre returns the category after the current one: no filter, then
// each genre in list order, then no filter again.
func (m Model) nextGenre() string {
	if len(m.Genres) == 0 {
		return ""
	}
	current, err := strconv.Atoi(m.Browser.Params().Category)
	if err != nil {
		return strconv.Itoa(m.Genres[0].ID)
	}
	for i, g := range m.Genres {
		if g.ID == current {
			if i+1 < len(m.Genres) {
				return strconv.Itoa(m.Genres[i+1].ID)
			}
			return ""
		}
	}
	return strconv.Itoa(m.Genres[0].ID)
}

// nextYear cycles through the known years, newest first
func (m Model) nextYear() string {
	if len(m.Years) == 0 {
		return ""
	}
	current := m.Browser.Params().Year
	if current == "" {
		return strconv.Itoa(m.Years[0])
	}
	for i, y := range m.Years {
		if strconv.Itoa(y) == current {
			if i+1 < len(m.Years) {
				return strconv.Itoa(m.Years[i+1])
			}
			return ""
		}
	}
	return strconv.Itoa(m.Years[0])
}

func (m Model) activeBrowser() *query.Browser {
	if m.Pane == PaneFavorites {
		return m.FavBrowser
	}
	return m.Browser
}

func (m Model) cursor() int {
	if m.Pane == PaneFavorites {
		return m.FavCursor
	}
	return m.Cursor
}

// setCursor moves the cursor of the active pane, clamped to the page
func (m *Model) setCursor(n int) {
	if m.Pane == PaneFavorites {
		m.FavCursor = clampIndex(n, len(m.FavBrowser.Result().Items))
	} else {
		m.Cursor = clampIndex(n, len(m.Browser.Result().Items))
	}
}

// clampCursor keeps both cursors on their current page
func (m *Model) clampCursor() {
	m.Cursor = clampIndex(m.Cursor, len(m.Browser.Result().Items))
	m.FavCursor = clampIndex(m.FavCursor, len(m.FavBrowser.Result().Items))
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// selected returns the item under the cursor
func (m Model) selected() (domain.Item, bool) {
	items := m.activeBrowser().Result().Items
	c := m.cursor()
	if c < 0 || c >= len(items) {
		return domain.Item{}, false
	}
	return items[c], true
}
