package components

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	searchModalWidth = 46
	maxRecent        = 20
)

// InputModal is the search prompt. Up and down recall earlier queries.
type InputModal struct {
	visible bool
	title   string
	input   textinput.Model

	recent []string // newest first
	recall int      // index into recent, -1 while editing
	draft  string   // text typed before recall started
}

// NewInputModal creates a hidden search prompt
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.Placeholder = "Movie or show title..."
	ti.CharLimit = 100
	ti.Width = searchModalWidth - 6
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{input: ti, recall: -1}
}

// Show opens the prompt prefilled with value
func (m *InputModal) Show(title, value string) {
	m.visible = true
	m.title = title
	m.recall = -1
	m.draft = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the prompt
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the prompt is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Remember records a submitted query for recall, moving repeats to the front
func (m *InputModal) Remember(query string) {
	if query == "" {
		return
	}
	if i := slices.Index(m.recent, query); i >= 0 {
		m.recent = slices.Delete(m.recent, i, i+1)
	}
	m.recent = slices.Insert(m.recent, 0, query)
	if len(m.recent) > maxRecent {
		m.recent = m.recent[:maxRecent]
	}
}

// Recent returns remembered queries, newest first
func (m InputModal) Recent() []string {
	return m.recent
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, ModalKeys.Enter):
			return m, nil, true
		case key.Matches(keyMsg, ModalKeys.Escape):
			m.Hide()
			return m, nil, false
		case key.Matches(keyMsg, ModalKeys.Up):
			m.step(1)
			return m, nil, false
		case key.Matches(keyMsg, ModalKeys.Down):
			m.step(-1)
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		// typing ends recall
		m.recall = -1
	}
	return m, cmd, false
}

// step moves through recent queries; positive is older
func (m *InputModal) step(delta int) {
	if len(m.recent) == 0 {
		return
	}
	if m.recall == -1 {
		if delta < 0 {
			return
		}
		m.draft = m.input.Value()
	}

	next := min(m.recall+delta, len(m.recent)-1)
	m.recall = max(next, -1)
	if m.recall == -1 {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.recent[m.recall])
	}
	m.input.CursorEnd()
}

// View renders the prompt
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	row := lipgloss.NewStyle().Width(searchModalWidth).Background(styles.SlateDark)

	hints := styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" search  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel")
	if len(m.recent) > 0 {
		hints += styles.HelpDescStyle.Render("  ") + styles.HelpKeyStyle.Render("↑↓") +
			styles.HelpDescStyle.Render(" recent")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		row.Foreground(styles.White).Bold(true).Render(m.title),
		row.Render(""),
		row.Render(m.input.View()),
		row.Render(""),
		row.Render(hints),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.TMDBTeal).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(content)
}
