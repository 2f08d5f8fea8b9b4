package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/carousel"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/router"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// applyRoute makes the UI match path: screen, overlay and search keyword.
// Item routes without a known source dataset open the overlay by id only.
func (m *Model) applyRoute(path string) tea.Cmd {
	loc, err := router.Resolve(path)
	if err != nil {
		m.Logger.Warn("unknown route", "path", path, "error", err)
		m.History.Back()
		return m.setStatus("Unknown location "+path, true)
	}

	m.Screen = loc.Screen

	var cmds []tea.Cmd
	if loc.Screen == router.ScreenSearch && loc.Keyword != "" &&
		(loc.Keyword != m.searchQuery || m.SearchErr != nil) {
		cmds = append(cmds, m.runSearch(loc.Keyword))
	}

	if !loc.HasItem {
		m.closeOverlay()
		return tea.Batch(cmds...)
	}

	if m.overlayShows(loc) {
		return tea.Batch(cmds...)
	}

	if res := m.Results.Results(); loc.Screen == router.ScreenSearch && res != nil && res.Query == loc.Keyword {
		cmds = append(cmds, m.openSearchItem(loc.ItemID, loc.Kind, res.Dataset))
		return tea.Batch(cmds...)
	}

	m.Overlay.OpenID(loc.ItemID)
	m.Detail.Show(loc.ItemID, nil)
	return tea.Batch(cmds...)
}

// overlayShows reports whether the overlay already shows the item of loc
func (m *Model) overlayShows(loc router.Location) bool {
	id, open := m.Overlay.ItemID()
	if !open || id != loc.ItemID {
		return false
	}
	want, ok := domain.ParseKind(loc.Kind)
	if !ok {
		return true
	}
	have, ok := m.Overlay.Kind()
	return !ok || have == want
}

// reopenSearchItem binds an id-only overlay on the search screen to the
// result set once it arrives
func (m *Model) reopenSearchItem() tea.Cmd {
	if m.Screen != router.ScreenSearch || m.Overlay.Category() != "" {
		return nil
	}
	id, open := m.Overlay.ItemID()
	res := m.Results.Results()
	if !open || res == nil {
		return nil
	}
	var kind string
	if loc, err := router.Resolve(m.History.Current()); err == nil && loc.ItemID == id {
		kind = loc.Kind
	}
	return m.openSearchItem(id, kind, res.Dataset)
}

// openSearchItem opens a search result. Movie and show ids can collide in
// the merged result set, so kind picks between them when it is known.
func (m *Model) openSearchItem(id int, kind string, ds *domain.Dataset) tea.Cmd {
	k, ok := domain.ParseKind(kind)
	if !ok {
		return m.openItem(domain.SearchResults, id, ds)
	}
	m.Overlay.OpenKind(domain.SearchResults, id, k, ds)
	return m.showOverlayItem(id)
}

// openItem opens the overlay for id within ds and requests its details
func (m *Model) openItem(cat domain.Category, id int, ds *domain.Dataset) tea.Cmd {
	m.Overlay.Open(cat, id, ds)
	return m.showOverlayItem(id)
}

// showOverlayItem fills the detail pane from the overlay's resolved item
func (m *Model) showOverlayItem(id int) tea.Cmd {
	item, ok := m.Overlay.Resolve()
	if !ok {
		m.Detail.Show(id, nil)
		return nil
	}
	m.Detail.Show(id, item)

	kind := item.Kind()
	if d, ok := m.Queries.CachedDetail(kind, id); ok {
		m.Detail.SetDetail(d, nil)
		return nil
	}
	m.Detail.SetLoading(true)
	return FetchDetailCmd(m.Commands, kind, id)
}

func (m *Model) closeOverlay() {
	m.Overlay.Close()
	m.Detail.Hide()
}

// back pops one history entry
func (m *Model) back() tea.Cmd {
	path, ok := m.History.Back()
	if !ok {
		if m.Overlay.IsOpen() {
			m.closeOverlay()
		}
		return nil
	}
	return m.applyRoute(path)
}

// navigate pushes path and applies it
func (m *Model) navigate(path string) tea.Cmd {
	m.History.Push(path)
	return m.applyRoute(m.History.Current())
}

// switchScreen toggles between the movies and TV screens
func (m *Model) switchScreen() tea.Cmd {
	if m.Screen == router.ScreenMovies {
		return m.navigate(router.TVHome())
	}
	return m.navigate(router.Home())
}

// selectCarouselItem opens the overlay for the card under the cursor
func (m *Model) selectCarouselItem() tea.Cmd {
	s := m.currentScreen()
	if s == nil {
		return nil
	}
	cat := s.categories[s.row]
	ds := m.Datasets[cat]
	visible := s.pager.Visible(cat, ds)
	if s.cursor >= len(visible) {
		return nil
	}
	item := visible[s.cursor]

	m.History.Push(itemRoute(m.Screen, item.ID))
	return m.openItem(cat, item.ID, ds)
}

// selectSearchResult opens the overlay for the result under the cursor
func (m *Model) selectSearchResult() tea.Cmd {
	item := m.Results.Selected()
	res := m.Results.Results()
	if item == nil || res == nil {
		return nil
	}
	kind := item.Kind().String()
	m.History.Push(router.SearchItem(res.Query, item.ID, kind))
	return m.openSearchItem(item.ID, kind, res.Dataset)
}

// selectFilterResult jumps to the screen holding the result and opens it
// from the category it was found in
func (m *Model) selectFilterResult(res search.FilterResult) tea.Cmd {
	screen := router.ScreenMovies
	if res.Category.Kind() == domain.KindTV {
		screen = router.ScreenTV
	}
	m.Screen = screen
	if s := m.currentScreen(); s != nil {
		if row := slices.Index(s.categories, res.Category); row >= 0 {
			s.row = row
			m.clampCursor(s)
		}
	}

	m.History.Push(itemRoute(screen, res.Item.ID))
	return m.openItem(res.Category, res.Item.ID, m.Datasets[res.Category])
}

func itemRoute(screen router.Screen, id int) string {
	if screen == router.ScreenTV {
		return router.TV(id)
	}
	return router.Movie(id)
}

// submitSearch runs the query typed into the search modal
func (m *Model) submitSearch() tea.Cmd {
	query := strings.TrimSpace(m.InputModal.Value())
	m.InputModal.Hide()
	if query == "" {
		return nil
	}
	m.InputModal.Remember(query)
	return m.navigate(router.Search(query))
}

// runSearch starts a multi search, superseding any request in flight
func (m *Model) runSearch(query string) tea.Cmd {
	m.searchSeq++
	m.searchQuery = query
	m.Searching = true
	m.SearchErr = nil
	m.Results.SetResults(nil)
	return tea.Batch(SearchCmd(m.SearchSvc, m.searchSeq, query), m.startSpinner())
}

// advance slides the focused row one page in dir. The request is dropped
// while any row on any screen is sliding.
func (m *Model) advance(dir carousel.Direction) tea.Cmd {
	s := m.currentScreen()
	if s == nil {
		return nil
	}
	cat := s.categories[s.row]
	ds := m.Datasets[cat]

	from := m.renderStrip(s, cat, ds)
	if !s.pager.Advance(cat, ds, dir) {
		return nil
	}
	m.clampCursor(s)

	seq := m.slide.seq + 1
	m.slide = slideState{
		active:   true,
		category: cat,
		from:     from,
		dir:      dir,
		seq:      seq,
	}

	if !m.opts.Animations {
		return SlideDoneCmd(seq)
	}
	return SlideTickCmd(seq, m.opts.FrameInterval)
}

// finishSlide ends the running slide and releases the transition lock
func (m *Model) finishSlide() {
	if s := m.screenFor(m.slide.category); s != nil {
		s.pager.Finish()
	} else {
		m.Lock.End()
	}
	m.slide.active = false
	m.slide.from = ""
}

// moveCursor moves the card cursor, turning the page at either edge
func (m *Model) moveCursor(delta int) tea.Cmd {
	s := m.currentScreen()
	if s == nil {
		return nil
	}
	cat := s.categories[s.row]
	n := len(s.pager.Visible(cat, m.Datasets[cat]))
	if n == 0 {
		return nil
	}

	next := s.cursor + delta
	switch {
	case next < 0:
		cmd := m.advance(carousel.Backward)
		if cmd != nil {
			s.cursor = len(s.pager.Visible(cat, m.Datasets[cat])) - 1
		}
		return cmd
	case next >= n:
		cmd := m.advance(carousel.Forward)
		if cmd != nil {
			s.cursor = 0
		}
		return cmd
	}
	s.cursor = next
	return nil
}

// moveRow changes the focused row
func (m *Model) moveRow(delta int) {
	s := m.currentScreen()
	if s == nil {
		return
	}
	s.row = min(max(s.row+delta, 0), len(s.categories)-1)
	m.clampCursor(s)
}

// refresh refetches the focused row, or every row when all is set
func (m *Model) refresh(all bool) tea.Cmd {
	if m.Screen == router.ScreenSearch {
		if q := m.searchQuery; q != "" {
			return m.runSearch(q)
		}
		return nil
	}

	var cats []domain.Category
	if all {
		cats = allCategories()
	} else if s := m.currentScreen(); s != nil {
		cats = []domain.Category{s.categories[s.row]}
	}
	for _, cat := range cats {
		m.Loading[cat] = loadState{}
	}
	return tea.Batch(FetchCategoriesCmd(m.Commands, cats, true), m.startSpinner())
}

// openInBrowser opens the TMDB page of the overlay item, or of the item
// under the cursor
func (m *Model) openInBrowser() tea.Cmd {
	if m.Opener == nil {
		return nil
	}
	if id, open := m.Overlay.ItemID(); open {
		kind := m.screenKind()
		if item := m.Detail.Item(); item != nil {
			kind = item.Kind()
		}
		return OpenInBrowserCmd(m.Opener, kind, id)
	}

	var item *domain.CatalogItem
	if m.Screen == router.ScreenSearch {
		item = m.Results.Selected()
	} else if s := m.currentScreen(); s != nil {
		cat := s.categories[s.row]
		if visible := s.pager.Visible(cat, m.Datasets[cat]); s.cursor < len(visible) {
			item = visible[s.cursor]
		}
	}
	if item == nil {
		return nil
	}
	return OpenInBrowserCmd(m.Opener, item.Kind(), item.ID)
}

// currentScreen returns the carousel state of the active screen, nil on
// the search screen
func (m *Model) currentScreen() *screenState {
	return m.Screens[m.Screen]
}

// screenFor returns the screen that owns cat
func (m *Model) screenFor(cat domain.Category) *screenState {
	for _, s := range m.Screens {
		if slices.Contains(s.categories, cat) {
			return s
		}
	}
	return nil
}

// screenKind returns the media kind of the active screen
func (m *Model) screenKind() domain.MediaKind {
	if m.Screen == router.ScreenTV {
		return domain.KindTV
	}
	return domain.KindMovie
}

// clampCursor keeps the cursor inside the visible page of the focused row
func (m *Model) clampCursor(s *screenState) {
	cat := s.categories[s.row]
	n := len(s.pager.Visible(cat, m.Datasets[cat]))
	s.cursor = min(max(s.cursor, 0), max(n-1, 0))
}

// loadedDatasets returns every dataset currently held, in display order
func (m *Model) loadedDatasets() []*domain.Dataset {
	var out []*domain.Dataset
	for _, cat := range allCategories() {
		if ds, ok := m.Datasets[cat]; ok {
			out = append(out, ds)
		}
	}
	return out
}

// renderStrip renders the visible page of cat for s
func (m *Model) renderStrip(s *screenState, cat domain.Category, ds *domain.Dataset) string {
	cursor := -1
	if s.categories[s.row] == cat {
		cursor = s.cursor
	}
	view := components.CarouselView{Width: m.Width, PageSize: s.pager.PageSize()}
	return view.RenderStrip(s.pager.Visible(cat, ds), cursor)
}
