package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/router"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	height := m.bodyHeight()

	var body string
	if m.Screen == router.ScreenSearch {
		body = m.renderSearch()
	} else {
		body = m.renderCarousels(height)
	}
	body = lipgloss.NewStyle().Height(height).MaxHeight(height).Render(body)

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)

	if m.Overlay.IsOpen() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Detail.View())
	}

	if m.Filter.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Filter.View())
	}

	if m.InputModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.InputModal.View())
	}

	if m.ShowHelp {
		view = m.renderHelp()
	}

	return view
}

// renderHeader renders the logo and screen tabs
func (m Model) renderHeader() string {
	tab := func(label string, screen router.Screen) string {
		if m.Screen == screen {
			return styles.ActiveTabStyle.Render(label)
		}
		return styles.TabStyle.Render(label)
	}

	parts := []string{
		styles.LogoStyle.Render("marquee"),
		" ",
		tab("Movies", router.ScreenMovies),
		tab("TV Shows", router.ScreenTV),
	}
	if m.searchQuery != "" {
		parts = append(parts, tab("Search", router.ScreenSearch))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

// renderCarousels renders the hero banner and as many rows as fit,
// scrolled to keep the focused row on screen
func (m Model) renderCarousels(height int) string {
	s := m.currentScreen()
	if s == nil {
		return ""
	}

	rowHeight := 1 + components.StripHeight + rowGap
	bannerHeight := components.BannerHeight + rowGap

	var sections []string

	showBanner := height >= bannerHeight+rowHeight
	if showBanner {
		hero := m.Datasets[s.categories[0]].Banner()
		sections = append(sections, components.RenderBanner(hero, m.Width, m.opts.ImageBaseURL), "")
		height -= bannerHeight
	}

	fit := max(height/rowHeight, 1)
	start := 0
	if s.row >= fit {
		start = s.row - fit + 1
	}
	end := min(start+fit, len(s.categories))

	for i := start; i < end; i++ {
		cat := s.categories[i]
		ds := m.Datasets[cat]
		load, loading := m.Loading[cat]

		row := components.Row{
			Category: cat,
			Focused:  i == s.row,
			Loading:  loading,
			Loaded:   load.loaded,
			Total:    load.total,
			Err:      m.Errors[cat],
			Spinner:  m.Spinner.View(),
		}

		if len(ds.Carousel()) > 0 {
			row.Page = s.pager.Index(cat)
			row.Pages = s.pager.PageCount(ds)
			row.Strip = m.renderStrip(s, cat, ds)
			if m.slide.active && m.slide.category == cat {
				row.Strip = components.SlideFrame(m.slide.from, row.Strip, m.Width,
					m.slide.frame, m.opts.SlideFrames, m.slide.dir)
			}
		}

		sections = append(sections, components.RenderRow(row, m.Width))
		if i < end-1 {
			sections = append(sections, "")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSearch renders the search results screen
func (m Model) renderSearch() string {
	switch {
	case m.Searching:
		return m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Searching for %q...", m.searchQuery))
	case m.SearchErr != nil:
		return styles.ErrorStyle.Render("Search failed: " + m.SearchErr.Error())
	}
	return m.Results.Header() + "\n\n" + m.Results.View()
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner + status when loading or status message active
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else if m.busy() {
		left = m.Spinner.View() + " " + styles.DimStyle.Render(m.loadingText())
	}

	// Center section: context-specific hints
	var center string
	switch {
	case m.Overlay.IsOpen():
		center = styles.AccentStyle.Render("o") + styles.DimStyle.Render(" Open in browser")
	case m.Screen != router.ScreenSearch:
		center = styles.AccentStyle.Render("[ ]") + styles.DimStyle.Render(" Page")
	}

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// loadingText describes what is loading
func (m Model) loadingText() string {
	if m.Searching {
		return "Searching..."
	}
	if len(m.Loading) == 1 {
		for cat, st := range m.Loading {
			if st.total > 0 {
				return fmt.Sprintf("Loading %s · page %d/%d", cat.Title(), st.loaded, st.total)
			}
			return fmt.Sprintf("Loading %s...", cat.Title())
		}
	}
	return fmt.Sprintf("Loading %d categories...", len(m.Loading))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true
	h.Width = min(m.Width-8, 100)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		h.View(Keys),
		"",
		styles.DimStyle.Render("esc to return"),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
