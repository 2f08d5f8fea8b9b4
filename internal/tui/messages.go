package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CategoryProgressMsg is sent once per downloaded listing page.
// NextCmd must be returned to keep reading the fetch's progress.
type CategoryProgressMsg struct {
	Category domain.Category
	Loaded   int
	Total    int
	NextCmd  tea.Cmd
}

// DatasetLoadedMsg signals that a category fetch finished
type DatasetLoadedMsg struct {
	Category domain.Category
	Result   domain.FetchResult
	Err      error
}

// DetailLoadedMsg signals that extended metadata for an item arrived
type DetailLoadedMsg struct {
	Kind   domain.MediaKind
	ID     int
	Detail *domain.Detail
	Err    error
}

// SearchResultsMsg signals that search results are ready. Seq identifies
// the request so stale responses can be dropped.
type SearchResultsMsg struct {
	Seq     int
	Results *search.Results
	Err     error
}

// SlideTickMsg advances the running slide animation by one frame
type SlideTickMsg struct {
	Seq int
}

// SlideDoneMsg signals that the slide animation finished and the
// transition lock may be released
type SlideDoneMsg struct {
	Seq int
}

// BrowserOpenedMsg reports the outcome of opening a TMDB page
type BrowserOpenedMsg struct {
	URL string
	Err error
}

// NavigateMsg pushes a route onto the history and applies it
type NavigateMsg struct {
	Path string
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
