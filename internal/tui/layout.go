package tui

// Vertical layout
const (
	// HeaderHeight is the tab bar plus a spacer line
	HeaderHeight = 2

	// FooterHeight is the single status line
	FooterHeight = 1

	// rowGap separates carousel rows
	rowGap = 1
)

// bodyHeight returns the lines available between header and footer
func (m Model) bodyHeight() int {
	return max(m.Height-HeaderHeight-FooterHeight, 0)
}

// updateLayout propagates the window size to sized components
func (m *Model) updateLayout() {
	m.Detail.SetSize(m.Width, m.Height)
	m.Filter.SetSize(m.Width, m.Height)
	// one line for the results summary
	m.Results.SetSize(m.Width, max(m.bodyHeight()-2, 0))
}
