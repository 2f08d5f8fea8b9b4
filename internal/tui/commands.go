package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/opener"
	"github.com/mmcdole/marquee/internal/search"
)

const (
	fetchTimeout  = 60 * time.Second
	detailTimeout = 15 * time.Second
	searchTimeout = 15 * time.Second
)

// Command factories for async operations

// fetchEvent is one progress update or the final result of a category fetch
type fetchEvent struct {
	loaded int
	total  int
	result domain.FetchResult
	err    error
	done   bool
}

// FetchCategoryCmd loads a category, streaming page progress back to the
// UI. force skips the freshness check.
func FetchCategoryCmd(svc domain.CatalogCommands, cat domain.Category, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)

		events := make(chan fetchEvent)

		go func() {
			defer cancel()
			defer close(events)

			onProgress := func(loaded, total int) {
				events <- fetchEvent{loaded: loaded, total: total}
			}

			var res domain.FetchResult
			var err error
			if force {
				res, err = svc.RefreshCategory(ctx, cat, onProgress)
			} else {
				res, err = svc.FetchCategory(ctx, cat, onProgress)
			}
			events <- fetchEvent{result: res, err: err, done: true}
		}()

		return readFetchEvent(cat, events)
	}
}

// readFetchEvent reads one event and converts it to a message, attaching a
// continuation command while the fetch is still running
func readFetchEvent(cat domain.Category, events <-chan fetchEvent) tea.Msg {
	ev, ok := <-events
	if !ok {
		return DatasetLoadedMsg{Category: cat, Err: context.Canceled}
	}
	if ev.done {
		return DatasetLoadedMsg{Category: cat, Result: ev.result, Err: ev.err}
	}
	return CategoryProgressMsg{
		Category: cat,
		Loaded:   ev.loaded,
		Total:    ev.total,
		NextCmd: func() tea.Msg {
			return readFetchEvent(cat, events)
		},
	}
}

// FetchCategoriesCmd loads several categories in parallel
func FetchCategoriesCmd(svc domain.CatalogCommands, cats []domain.Category, force bool) tea.Cmd {
	cmds := make([]tea.Cmd, len(cats))
	for i, cat := range cats {
		cmds[i] = FetchCategoryCmd(svc, cat, force)
	}
	return tea.Batch(cmds...)
}

// FetchDetailCmd loads extended metadata for an item
func FetchDetailCmd(svc domain.CatalogCommands, kind domain.MediaKind, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		d, err := svc.FetchDetail(ctx, kind, id)
		return DetailLoadedMsg{Kind: kind, ID: id, Detail: d, Err: err}
	}
}

// SearchCmd runs a multi search
func SearchCmd(svc *search.Service, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		res, err := svc.Search(ctx, query)
		return SearchResultsMsg{Seq: seq, Results: res, Err: err}
	}
}

// OpenInBrowserCmd opens an item's TMDB page
func OpenInBrowserCmd(o *opener.Opener, kind domain.MediaKind, id int) tea.Cmd {
	return func() tea.Msg {
		url := opener.PageURL(kind, id)
		return BrowserOpenedMsg{URL: url, Err: o.Open(url)}
	}
}

// NavigateCmd navigates to path
func NavigateCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// SlideTickCmd schedules the next animation frame
func SlideTickCmd(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return SlideTickMsg{Seq: seq}
	})
}

// SlideDoneCmd reports the end of a slide immediately
func SlideDoneCmd(seq int) tea.Cmd {
	return func() tea.Msg {
		return SlideDoneMsg{Seq: seq}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
