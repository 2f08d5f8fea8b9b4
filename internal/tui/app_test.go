package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/logging"
	"github.com/mmcdole/marquee/internal/router"
	"github.com/mmcdole/marquee/internal/search"
)

// --- fakes ---

type fakeCommands struct {
	datasets     map[domain.Category]*domain.Dataset
	details      map[int]*domain.Detail
	progress     [][2]int
	err          error
	refreshCalls int
}

func (f *fakeCommands) fetch(cat domain.Category, onProgress domain.ProgressFunc) (domain.FetchResult, error) {
	for _, p := range f.progress {
		onProgress(p[0], p[1])
	}
	if f.err != nil {
		return domain.FetchResult{}, f.err
	}
	return domain.FetchResult{Dataset: f.datasets[cat]}, nil
}

func (f *fakeCommands) FetchCategory(_ context.Context, cat domain.Category, onProgress domain.ProgressFunc) (domain.FetchResult, error) {
	return f.fetch(cat, onProgress)
}

func (f *fakeCommands) RefreshCategory(_ context.Context, cat domain.Category, onProgress domain.ProgressFunc) (domain.FetchResult, error) {
	f.refreshCalls++
	return f.fetch(cat, onProgress)
}

func (f *fakeCommands) FetchDetail(_ context.Context, kind domain.MediaKind, id int) (*domain.Detail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakeCommands) InvalidateCategory(domain.Category) {}
func (f *fakeCommands) InvalidateAll()                     {}

type fakeQueries struct {
	datasets map[domain.Category]*domain.Dataset
}

func (f fakeQueries) CachedDataset(cat domain.Category) (*domain.Dataset, bool) {
	ds, ok := f.datasets[cat]
	return ds, ok
}

func (f fakeQueries) CachedDetail(domain.MediaKind, int) (*domain.Detail, bool) {
	return nil, false
}

type fakeSearchClient struct {
	items []*domain.CatalogItem
}

func (f fakeSearchClient) Search(context.Context, string) ([]*domain.CatalogItem, error) {
	return f.items, nil
}

// --- helpers ---

func makeDataset(cat domain.Category, count, baseID int) *domain.Dataset {
	items := make([]*domain.CatalogItem, count)
	for i := range items {
		item := &domain.CatalogItem{ID: baseID + i}
		if cat.Kind() == domain.KindTV {
			item.Name = fmt.Sprintf("Show %d", baseID+i)
		} else {
			item.Title = fmt.Sprintf("Movie %d", baseID+i)
		}
		items[i] = item
	}
	return &domain.Dataset{Category: cat, Items: items}
}

// allDatasets gives every category 20 items: a banner and 19 carousel
// items spread over 4 pages of 6
func allDatasets() map[domain.Category]*domain.Dataset {
	out := make(map[domain.Category]*domain.Dataset)
	for i, cat := range allCategories() {
		out[cat] = makeDataset(cat, 20, (i+1)*100)
	}
	return out
}

func newTestModel(t *testing.T, opts Options) (Model, *fakeCommands) {
	t.Helper()
	datasets := allDatasets()
	cmds := &fakeCommands{datasets: datasets, details: map[int]*domain.Detail{}}
	queries := fakeQueries{datasets: datasets}
	svc := search.NewService(fakeSearchClient{items: []*domain.CatalogItem{
		{ID: 603, Title: "The Matrix"},
		{ID: 1, Name: "Keanu Reeves", MediaType: "person"},
		{ID: 1396, Name: "Breaking Bad"},
	}}, queries, allCategories(), logging.NullLogger())

	m := NewModel(cmds, queries, svc, nil, opts, logging.NullLogger())
	// Cached datasets are in place; pretend the initial fetches finished
	for cat := range m.Loading {
		delete(m.Loading, cat)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	return m, cmds
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// finishSlide plays the running slide to the end
func finishSlide(t *testing.T, m Model) Model {
	t.Helper()
	seq := m.slide.seq
	var cmd tea.Cmd
	for i := 0; i < m.opts.SlideFrames; i++ {
		m, cmd = updateCmd(t, m, SlideTickMsg{Seq: seq})
	}
	require.NotNil(t, cmd)
	done := cmd()
	require.IsType(t, SlideDoneMsg{}, done)
	return update(t, m, done)
}

// --- tests ---

func TestAdvanceHoldsLockUntilSlideCompletes(t *testing.T) {
	m, _ := newTestModel(t, Options{Animations: true, SlideFrames: 3})
	pager := m.Screens[router.ScreenMovies].pager

	m, cmd := updateCmd(t, m, runes("]"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, pager.Index(domain.MovieNowPlaying))
	assert.True(t, m.Lock.Locked())
	assert.True(t, m.slide.active)

	// rapid presses while sliding are dropped
	m = update(t, m, runes("]"))
	m = update(t, m, runes("["))
	assert.Equal(t, 1, pager.Index(domain.MovieNowPlaying))

	// intermediate frames keep the lock
	m = update(t, m, SlideTickMsg{Seq: m.slide.seq})
	assert.True(t, m.Lock.Locked())

	m = finishSlide(t, m)
	assert.False(t, m.Lock.Locked())
	assert.False(t, m.slide.active)

	m = update(t, m, runes("]"))
	assert.Equal(t, 2, pager.Index(domain.MovieNowPlaying))
}

func TestSlideWithoutAnimationsFinishesImmediately(t *testing.T) {
	m, _ := newTestModel(t, Options{Animations: false})

	m, cmd := updateCmd(t, m, runes("["))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, SlideDoneMsg{Seq: m.slide.seq}, msg)

	// backward from page 0 wraps to the last page
	assert.Equal(t, 3, m.Screens[router.ScreenMovies].pager.Index(domain.MovieNowPlaying))

	m = update(t, m, msg)
	assert.False(t, m.Lock.Locked())
}

func TestStaleSlideMessagesAreIgnored(t *testing.T) {
	m, _ := newTestModel(t, Options{Animations: true, SlideFrames: 2})
	m = update(t, m, runes("]"))

	m = update(t, m, SlideDoneMsg{Seq: m.slide.seq + 5})
	assert.True(t, m.Lock.Locked())

	m, cmd := updateCmd(t, m, SlideTickMsg{Seq: m.slide.seq - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.slide.frame)
}

func TestLockIsSharedAcrossScreens(t *testing.T) {
	m, _ := newTestModel(t, Options{Animations: true, SlideFrames: 2})

	m = update(t, m, runes("]"))
	m = update(t, m, keyTab)
	require.Equal(t, router.ScreenTV, m.Screen)

	m = update(t, m, runes("]"))
	assert.Equal(t, 0, m.Screens[router.ScreenTV].pager.Index(domain.TVAiringToday))

	m = finishSlide(t, m)
	m = update(t, m, runes("]"))
	assert.Equal(t, 1, m.Screens[router.ScreenTV].pager.Index(domain.TVAiringToday))
}

func TestCursorTurnsPageAtEdge(t *testing.T) {
	m, _ := newTestModel(t, Options{Animations: false})
	s := m.Screens[router.ScreenMovies]

	for i := 0; i < 5; i++ {
		m = update(t, m, runes("l"))
	}
	assert.Equal(t, 5, s.cursor)
	assert.Equal(t, 0, s.pager.Index(domain.MovieNowPlaying))

	m, cmd := updateCmd(t, m, runes("l"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, s.pager.Index(domain.MovieNowPlaying))
	assert.Equal(t, 0, s.cursor)

	m = update(t, m, cmd())
	m = update(t, m, runes("h"))
	assert.Equal(t, 0, s.pager.Index(domain.MovieNowPlaying))
	assert.Equal(t, 5, s.cursor)
}

func TestSelectOpensOverlayAndBackCloses(t *testing.T) {
	m, cmds := newTestModel(t, Options{})
	ds := m.Datasets[domain.MovieNowPlaying]
	cmds.details[ds.Items[1].ID] = &domain.Detail{ID: ds.Items[1].ID, Tagline: "tagline"}

	m, cmd := updateCmd(t, m, keyEnter)
	require.True(t, m.Overlay.IsOpen())
	assert.Equal(t, router.Movie(ds.Items[1].ID), m.History.Current())
	assert.Equal(t, domain.MovieNowPlaying, m.Overlay.Category())

	item, ok := m.Overlay.Resolve()
	require.True(t, ok)
	assert.Same(t, ds.Items[1], item)

	require.NotNil(t, cmd)
	loaded := cmd()
	require.IsType(t, DetailLoadedMsg{}, loaded)
	m = update(t, m, loaded)

	m = update(t, m, keyEsc)
	assert.False(t, m.Overlay.IsOpen())
	assert.False(t, m.Detail.IsVisible())
	assert.Equal(t, router.Home(), m.History.Current())
}

func TestOverlayKeepsSnapshotAfterRefetch(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = update(t, m, keyEnter)
	id, _ := m.Overlay.ItemID()

	// a refetch replaces the dataset with one that no longer holds the item
	m = update(t, m, DatasetLoadedMsg{
		Category: domain.MovieNowPlaying,
		Result:   domain.FetchResult{Dataset: makeDataset(domain.MovieNowPlaying, 5, 9000)},
	})

	item, ok := m.Overlay.Resolve()
	require.True(t, ok)
	assert.Equal(t, id, item.ID)
}

func TestDeepLinkOpensOverlayByID(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = update(t, m, NavigateMsg{Path: router.TV(4242)})
	assert.Equal(t, router.ScreenTV, m.Screen)
	require.True(t, m.Overlay.IsOpen())
	id, _ := m.Overlay.ItemID()
	assert.Equal(t, 4242, id)
	assert.Empty(t, m.Overlay.Category())

	_, ok := m.Overlay.Resolve()
	assert.False(t, ok)
	assert.Nil(t, m.Detail.Item())
	assert.Contains(t, m.View(), "#4242")

	m = update(t, m, keyEsc)
	assert.False(t, m.Overlay.IsOpen())
	assert.Equal(t, router.Home(), m.History.Current())
	assert.Equal(t, router.ScreenMovies, m.Screen)
}

func TestUnknownRouteIsRejected(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = update(t, m, NavigateMsg{Path: "/people/1"})
	assert.Equal(t, router.Home(), m.History.Current())
	assert.False(t, m.Overlay.IsOpen())
	assert.True(t, m.StatusIsErr)
}

func TestSearchFlow(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = update(t, m, runes("/"))
	require.True(t, m.InputModal.IsVisible())
	m = update(t, m, runes("matrix"))
	m, cmd := updateCmd(t, m, keyEnter)
	require.NotNil(t, cmd)

	assert.False(t, m.InputModal.IsVisible())
	assert.Equal(t, router.ScreenSearch, m.Screen)
	assert.Equal(t, router.Search("matrix"), m.History.Current())
	assert.True(t, m.Searching)

	res, err := m.SearchSvc.Search(context.Background(), "matrix")
	require.NoError(t, err)

	// an older request's response is dropped
	m = update(t, m, SearchResultsMsg{Seq: m.searchSeq - 1, Results: res})
	assert.True(t, m.Searching)

	m = update(t, m, SearchResultsMsg{Seq: m.searchSeq, Results: res})
	assert.False(t, m.Searching)
	require.Equal(t, 2, m.Results.Len())

	// cursor starts on the first movie; move to the show
	m = update(t, m, runes("l"))
	m = update(t, m, keyEnter)
	require.True(t, m.Overlay.IsOpen())
	assert.Equal(t, domain.SearchResults, m.Overlay.Category())
	assert.Equal(t, router.SearchItem("matrix", 1396, "tv"), m.History.Current())

	item, ok := m.Overlay.Resolve()
	require.True(t, ok)
	assert.Equal(t, "Breaking Bad", item.DisplayTitle())

	m = update(t, m, keyEsc)
	assert.False(t, m.Overlay.IsOpen())
	assert.Equal(t, router.ScreenSearch, m.Screen)
	assert.Equal(t, 2, m.Results.Len())
}

func TestSearchItemRouteBindsWhenResultsArrive(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = update(t, m, NavigateMsg{Path: router.SearchItem("matrix", 603, "")})
	require.True(t, m.Searching)
	require.True(t, m.Overlay.IsOpen())
	_, ok := m.Overlay.Resolve()
	assert.False(t, ok)

	res, err := m.SearchSvc.Search(context.Background(), "matrix")
	require.NoError(t, err)
	m = update(t, m, SearchResultsMsg{Seq: m.searchSeq, Results: res})

	item, ok := m.Overlay.Resolve()
	require.True(t, ok)
	assert.Equal(t, "The Matrix", item.DisplayTitle())
}

func TestSearchResultsWithSharedIDOpenSelectedKind(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = update(t, m, NavigateMsg{Path: router.Search("42")})
	res := &search.Results{
		Query:  "42",
		Movies: []*domain.CatalogItem{{ID: 42, Title: "Movie 42"}},
		Shows:  []*domain.CatalogItem{{ID: 42, Name: "Show 42"}},
	}
	res.Dataset = &domain.Dataset{Category: domain.SearchResults, Items: append(append([]*domain.CatalogItem{}, res.Movies...), res.Shows...)}
	m = update(t, m, SearchResultsMsg{Seq: m.searchSeq, Results: res})

	m = update(t, m, runes("l"))
	m, cmd := updateCmd(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, router.SearchItem("42", 42, "tv"), m.History.Current())

	item, ok := m.Overlay.Resolve()
	require.True(t, ok)
	assert.Equal(t, "Show 42", item.DisplayTitle())
	msg, ok := cmd().(DetailLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, domain.KindTV, msg.Kind)

	// details for the movie sharing the id are not shown on the show
	m = update(t, m, DetailLoadedMsg{Kind: domain.KindMovie, ID: 42, Detail: &domain.Detail{ID: 42, Kind: domain.KindMovie, Tagline: "wrong one"}})
	assert.NotContains(t, m.Detail.View(), "wrong one")

	// a deep link with a kind binds to that kind once results arrive
	m = update(t, m, keyEsc)
	m = update(t, m, NavigateMsg{Path: router.SearchItem("42", 42, "movie")})
	item, ok = m.Overlay.Resolve()
	require.True(t, ok)
	assert.Equal(t, "Movie 42", item.DisplayTitle())
}

func TestFetchFailureLeavesDatasetAbsent(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	delete(m.Datasets, domain.MovieNowPlaying)

	m = update(t, m, DatasetLoadedMsg{Category: domain.MovieNowPlaying, Err: domain.ErrServerOffline})
	_, ok := m.Datasets[domain.MovieNowPlaying]
	assert.False(t, ok)
	assert.ErrorIs(t, m.Errors[domain.MovieNowPlaying], domain.ErrServerOffline)

	// navigation on the missing row does nothing
	m, cmd := updateCmd(t, m, runes("]"))
	assert.Nil(t, cmd)
	assert.False(t, m.Lock.Locked())

	m, cmd = updateCmd(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.Overlay.IsOpen())

	assert.Contains(t, m.View(), "Could not load")
}

func TestDatasetLoadedClampsPage(t *testing.T) {
	m, _ := newTestModel(t, Options{Animations: false})
	m = update(t, m, runes("["))
	m = update(t, m, SlideDoneMsg{Seq: m.slide.seq})
	require.Equal(t, 3, m.Screens[router.ScreenMovies].pager.Index(domain.MovieNowPlaying))

	m = update(t, m, DatasetLoadedMsg{
		Category: domain.MovieNowPlaying,
		Result:   domain.FetchResult{Dataset: makeDataset(domain.MovieNowPlaying, 8, 1)},
	})
	assert.Equal(t, 1, m.Screens[router.ScreenMovies].pager.Index(domain.MovieNowPlaying))
	assert.Equal(t, 0, m.Screens[router.ScreenMovies].cursor)
}

func TestFilterOpensItemOnItsScreen(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	target := m.Datasets[domain.TVPopular].Items[3]

	m = update(t, m, runes("f"))
	require.True(t, m.Filter.IsVisible())
	m = update(t, m, runes(target.Name))
	require.Positive(t, m.Filter.ResultCount())

	m = update(t, m, keyEnter)
	assert.False(t, m.Filter.IsVisible())
	assert.Equal(t, router.ScreenTV, m.Screen)
	assert.Equal(t, 2, m.Screens[router.ScreenTV].row)
	require.True(t, m.Overlay.IsOpen())
	assert.Equal(t, domain.TVPopular, m.Overlay.Category())
	assert.Equal(t, router.TV(target.ID), m.History.Current())
}

func TestDetailForClosedOverlayIsDropped(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = update(t, m, DetailLoadedMsg{Kind: domain.KindMovie, ID: 7, Detail: &domain.Detail{ID: 7}})
	assert.False(t, m.Detail.IsVisible())
}

func TestRefreshForcesFetch(t *testing.T) {
	m, cmds := newTestModel(t, Options{})

	m, cmd := updateCmd(t, m, runes("r"))
	require.NotNil(t, cmd)
	_, loading := m.Loading[domain.MovieNowPlaying]
	assert.True(t, loading)
	assert.Len(t, m.Loading, 1)

	m = update(t, m, runes("R"))
	assert.Len(t, m.Loading, len(allCategories()))
	assert.Zero(t, cmds.refreshCalls)
}

func TestFetchCategoryCmdStreamsProgress(t *testing.T) {
	cmds := &fakeCommands{
		datasets: allDatasets(),
		progress: [][2]int{{1, 2}, {2, 2}},
	}

	msg := FetchCategoryCmd(cmds, domain.TVOnTheAir, true)()
	first, ok := msg.(CategoryProgressMsg)
	require.True(t, ok)
	assert.Equal(t, 1, first.Loaded)
	assert.Equal(t, 2, first.Total)

	second, ok := first.NextCmd().(CategoryProgressMsg)
	require.True(t, ok)
	assert.Equal(t, 2, second.Loaded)

	done, ok := second.NextCmd().(DatasetLoadedMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Same(t, cmds.datasets[domain.TVOnTheAir], done.Result.Dataset)
	assert.Equal(t, 1, cmds.refreshCalls)
}

func TestFetchCategoryCmdReportsError(t *testing.T) {
	cmds := &fakeCommands{err: errors.New("boom")}

	msg := FetchCategoryCmd(cmds, domain.MovieUpcoming, false)()
	done, ok := msg.(DatasetLoadedMsg)
	require.True(t, ok)
	assert.EqualError(t, done.Err, "boom")
	assert.Equal(t, domain.MovieUpcoming, done.Category)
}

func TestViewRendersScreens(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	view := m.View()
	assert.Contains(t, view, "marquee")
	assert.Contains(t, view, domain.MovieNowPlaying.Title())
	assert.Contains(t, view, "Movie 100") // banner

	m = update(t, m, keyTab)
	assert.Contains(t, m.View(), domain.TVAiringToday.Title())

	m = update(t, m, runes("?"))
	assert.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Keys")
	m = update(t, m, keyEsc)
	assert.False(t, m.ShowHelp)
}
