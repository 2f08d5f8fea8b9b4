package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/carousel"
	"github.com/mmcdole/marquee/internal/router"
	"github.com/mmcdole/marquee/internal/search"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Detail overlay keys
	if m.Overlay.IsOpen() {
		switch {
		case key.Matches(msg, Keys.Back):
			return m, m.back()
		case key.Matches(msg, Keys.Open):
			return m, m.openInBrowser()
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.ShowHelp = true
			return m, nil
		}
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.InputModal.Show("Search TMDB", m.searchQuery)
		return m, textinput.Blink

	case key.Matches(msg, Keys.Filter):
		m.Filter.Show()
		m.Filter.SetSize(m.Width, m.Height)
		return m, textinput.Blink

	case key.Matches(msg, Keys.Switch):
		return m, m.switchScreen()

	case key.Matches(msg, Keys.Back):
		return m, m.back()

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh(false)

	case key.Matches(msg, Keys.RefreshAll):
		return m, m.refresh(true)

	case key.Matches(msg, Keys.Open):
		return m, m.openInBrowser()
	}

	if m.Screen == router.ScreenSearch {
		return m.handleResultsKey(msg)
	}
	return m.handleCarouselKey(msg)
}

// routeToModal sends the key to the visible modal. Returns handled=false
// when no modal is open.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			return true, m, m.submitSearch()
		}
		return true, m, cmd
	}

	if m.Filter.IsVisible() {
		var cmd tea.Cmd
		var selected bool
		m.Filter, cmd, selected = m.Filter.Update(msg)
		if selected {
			res := m.Filter.Selected()
			m.Filter.Hide()
			if res != nil {
				return true, m, m.selectFilterResult(*res)
			}
			return true, m, nil
		}
		if m.Filter.QueryChanged() {
			m.Filter.SetResults(search.FilterLocal(m.Filter.Query(), m.loadedDatasets()))
		}
		return true, m, cmd
	}

	return false, m, nil
}

// handleCarouselKey handles keys on the movies and TV screens
func (m Model) handleCarouselKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, Keys.Down):
		m.moveRow(1)
	case key.Matches(msg, Keys.Left):
		return m, m.moveCursor(-1)
	case key.Matches(msg, Keys.Right):
		return m, m.moveCursor(1)
	case key.Matches(msg, Keys.PrevPage):
		return m, m.advance(carousel.Backward)
	case key.Matches(msg, Keys.NextPage):
		return m, m.advance(carousel.Forward)
	case key.Matches(msg, Keys.Enter):
		return m, m.selectCarouselItem()
	}
	return m, nil
}

// handleResultsKey handles keys on the search results grid
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		m.Results.MoveRow(-1)
	case key.Matches(msg, Keys.Down):
		m.Results.MoveRow(1)
	case key.Matches(msg, Keys.Left):
		m.Results.Move(-1)
	case key.Matches(msg, Keys.Right):
		m.Results.Move(1)
	case key.Matches(msg, Keys.Enter):
		return m, m.selectSearchResult()
	}
	return m, nil
}
