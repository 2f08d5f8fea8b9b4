package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/carousel"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/opener"
	"github.com/mmcdole/marquee/internal/overlay"
	"github.com/mmcdole/marquee/internal/router"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	// statusDuration is how long transient status messages stay visible
	statusDuration = 3 * time.Second

	defaultSlideFrames   = 8
	defaultFrameInterval = 30 * time.Millisecond
)

// Options configures the model
type Options struct {
	PageSize      int
	Animations    bool
	SlideFrames   int
	FrameInterval time.Duration
	ImageBaseURL  string
	StartPath     string // deep link, "/" when empty
}

// screenState is the carousel state of the movies or TV screen
type screenState struct {
	categories []domain.Category
	pager      *carousel.Pager
	row        int // focused row
	cursor     int // selected card within the visible page
}

// loadState tracks page progress of an in-flight category fetch
type loadState struct {
	loaded int
	total  int
}

// slideState is the running page transition of one row
type slideState struct {
	active   bool
	category domain.Category
	from     string // strip rendered before the index changed
	dir      carousel.Direction
	frame    int
	seq      int
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Commands  domain.CatalogCommands
	Queries   domain.CatalogQueries
	SearchSvc *search.Service
	Opener    *opener.Opener
	Logger    *slog.Logger

	opts Options

	// Carousels. Both screens share one transition lock.
	Lock    *carousel.TransitionLock
	Screens map[router.Screen]*screenState
	Screen  router.Screen

	// Routing and the detail overlay
	History *router.History
	Overlay overlay.Controller
	Detail  components.DetailModal

	// Data
	Datasets map[domain.Category]*domain.Dataset
	Loading  map[domain.Category]loadState
	Errors   map[domain.Category]error

	// Search
	Results     components.ResultsGrid
	searchSeq   int
	searchQuery string
	Searching   bool
	SearchErr   error

	// Modals
	InputModal components.InputModal
	Filter     components.FilterModal
	ShowHelp   bool
	Help       help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	Spinner     spinner.Model
	StatusMsg   string
	StatusIsErr bool

	slide slideState
}

// NewModel creates a new application model
func NewModel(
	commands domain.CatalogCommands,
	queries domain.CatalogQueries,
	searchSvc *search.Service,
	op *opener.Opener,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = carousel.DefaultPageSize
	}
	if opts.SlideFrames <= 0 {
		opts.SlideFrames = defaultSlideFrames
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}

	lock := carousel.NewTransitionLock()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle

	m := Model{
		Commands:  commands,
		Queries:   queries,
		SearchSvc: searchSvc,
		Opener:    op,
		Logger:    logger,
		opts:      opts,
		Lock:      lock,
		Screens: map[router.Screen]*screenState{
			router.ScreenMovies: {
				categories: domain.MovieCategories,
				pager:      carousel.NewPager(lock, opts.PageSize, domain.MovieCategories...),
			},
			router.ScreenTV: {
				categories: domain.TVCategories,
				pager:      carousel.NewPager(lock, opts.PageSize, domain.TVCategories...),
			},
		},
		Screen:     router.ScreenMovies,
		History:    router.NewHistory(router.Home()),
		Detail:     components.NewDetailModal(opts.ImageBaseURL),
		Datasets:   make(map[domain.Category]*domain.Dataset),
		Loading:    make(map[domain.Category]loadState),
		Errors:     make(map[domain.Category]error),
		Results:    components.NewResultsGrid(opts.PageSize),
		InputModal: components.NewInputModal(),
		Filter:     components.NewFilterModal(),
		Help:       h,
		Spinner:    sp,
	}

	// Cached datasets render immediately while the fetches run
	for _, cat := range allCategories() {
		if ds, ok := queries.CachedDataset(cat); ok {
			m.Datasets[cat] = ds
		}
		m.Loading[cat] = loadState{}
	}

	return m
}

// allCategories lists every carousel category in display order
func allCategories() []domain.Category {
	cats := make([]domain.Category, 0, len(domain.MovieCategories)+len(domain.TVCategories))
	cats = append(cats, domain.MovieCategories...)
	return append(cats, domain.TVCategories...)
}

// Init starts fetching every category and follows the deep link if one
// was given
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		FetchCategoriesCmd(m.Commands, allCategories(), false),
		m.Spinner.Tick,
	}
	if m.opts.StartPath != "" && m.opts.StartPath != router.Home() {
		cmds = append(cmds, NavigateCmd(m.opts.StartPath))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.History.Push(msg.Path)
		return m, m.applyRoute(m.History.Current())

	case CategoryProgressMsg:
		m.Loading[msg.Category] = loadState{loaded: msg.Loaded, total: msg.Total}
		return m, msg.NextCmd

	case DatasetLoadedMsg:
		return m.handleDatasetLoaded(msg)

	case DetailLoadedMsg:
		// Drop results for an overlay that was closed or moved on
		if id, open := m.Overlay.ItemID(); !open || id != msg.ID {
			return m, nil
		}
		if kind, ok := m.Overlay.Kind(); ok && kind != msg.Kind {
			return m, nil
		}
		if msg.Err != nil {
			m.Logger.Warn("detail fetch failed", "kind", msg.Kind, "id", msg.ID, "error", msg.Err)
		}
		m.Detail.SetDetail(msg.Detail, msg.Err)
		return m, nil

	case SearchResultsMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		m.Searching = false
		m.SearchErr = msg.Err
		if msg.Err != nil {
			m.Logger.Error("search failed", "error", msg.Err)
			return m, m.setStatus("Search failed: "+msg.Err.Error(), true)
		}
		m.Results.SetResults(msg.Results)
		// A search item route may have been resolved before results arrived
		if cmd := m.reopenSearchItem(); cmd != nil {
			return m, cmd
		}
		if msg.Results.Offline {
			return m, m.setStatus("TMDB unreachable, showing cached matches", true)
		}
		return m, nil

	case SlideTickMsg:
		if !m.slide.active || msg.Seq != m.slide.seq {
			return m, nil
		}
		m.slide.frame++
		if m.slide.frame >= m.opts.SlideFrames {
			return m, SlideDoneCmd(msg.Seq)
		}
		return m, SlideTickCmd(msg.Seq, m.opts.FrameInterval)

	case SlideDoneMsg:
		if msg.Seq != m.slide.seq {
			return m, nil
		}
		m.finishSlide()
		return m, nil

	case BrowserOpenedMsg:
		if msg.Err != nil {
			m.Logger.Error("failed to open browser", "url", msg.URL, "error", msg.Err)
			return m, m.setStatus("Could not open browser: "+msg.Err.Error(), true)
		}
		return m, m.setStatus("Opened "+msg.URL, false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ErrMsg:
		m.Logger.Error("error", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleDatasetLoaded stores a finished fetch and clamps the pager
func (m Model) handleDatasetLoaded(msg DatasetLoadedMsg) (tea.Model, tea.Cmd) {
	delete(m.Loading, msg.Category)

	if msg.Err != nil {
		m.Errors[msg.Category] = msg.Err
		m.Logger.Error("category fetch failed", "category", msg.Category, "error", msg.Err)
		return m, m.setStatus("Failed to load "+msg.Category.Title(), true)
	}

	ds := msg.Result.Dataset
	if ds == nil {
		return m, nil
	}
	delete(m.Errors, msg.Category)
	m.Datasets[msg.Category] = ds

	if s := m.screenFor(msg.Category); s != nil {
		s.pager.Sync(msg.Category, ds)
		m.clampCursor(s)
	}

	if msg.Result.Stale {
		return m, m.setStatus("Offline, showing cached "+msg.Category.Title(), true)
	}
	return m, nil
}

// busy reports whether anything is loading in the background
func (m Model) busy() bool {
	return len(m.Loading) > 0 || m.Searching
}

// setStatus shows a transient status message
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusDuration)
}

// startSpinner restarts the spinner tick loop after it went idle
func (m Model) startSpinner() tea.Cmd {
	return m.Spinner.Tick
}
