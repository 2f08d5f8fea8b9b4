package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// FilterModal fuzzy-filters titles across every loaded carousel
type FilterModal struct {
	input     textinput.Model
	results   []search.FilterResult
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewFilterModal creates a new filter modal
func NewFilterModal() FilterModal {
	ti := textinput.New()
	ti.Placeholder = "Filter loaded titles..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "f "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return FilterModal{
		input: ti,
	}
}

// Show makes the filter visible and focuses the input
func (o *FilterModal) Show() {
	o.visible = true
	o.input.Focus()
	o.input.SetValue("")
	o.results = nil
	o.cursor = 0
	o.prevQuery = ""
}

// Hide hides the filter
func (o *FilterModal) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the filter is visible
func (o FilterModal) IsVisible() bool {
	return o.visible
}

// SetResults sets the filter results with match highlighting data
func (o *FilterModal) SetResults(results []search.FilterResult) {
	o.results = results
	o.cursor = 0
}

// SetSize updates the component dimensions
func (o *FilterModal) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = max(o.modalWidth()-10, 10)
}

// Query returns the current filter query
func (o FilterModal) Query() string {
	return o.input.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (o *FilterModal) QueryChanged() bool {
	current := o.input.Value()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// Selected returns the result under the cursor
func (o FilterModal) Selected() *search.FilterResult {
	if len(o.results) == 0 || o.cursor >= len(o.results) {
		return nil
	}
	return &o.results[o.cursor]
}

// ResultCount returns the number of results
func (o FilterModal) ResultCount() int {
	return len(o.results)
}

// Update handles messages, returns (modal, cmd, selected)
func (o FilterModal) Update(msg tea.Msg) (FilterModal, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd
	resultCount := o.ResultCount()

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, ModalKeys.Escape):
			o.Hide()
			return o, nil, false

		case key.Matches(msg, ModalKeys.Enter):
			return o, nil, resultCount > 0

		case key.Matches(msg, ModalKeys.Down):
			if o.cursor < resultCount-1 {
				o.cursor++
			}
			return o, nil, false

		case key.Matches(msg, ModalKeys.Up):
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

func (o FilterModal) modalWidth() int {
	return min(max(o.width*2/3, 40), 80)
}

// View renders the component
func (o FilterModal) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := o.modalWidth()
	maxResults := max(min(o.height-12, 10), 3)

	var b strings.Builder

	b.WriteString("Filter")
	b.WriteString("\n\n")

	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	o.renderResults(&b, modalWidth, maxResults)

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	return styles.ModalStyle.
		Width(modalWidth).
		Render(content)
}

// highlightMatches renders text with matched characters highlighted.
// Matched indexes are byte offsets into text.
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := styles.NormalItemStyle
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle
		match = styles.MatchHighlightStyle.Background(styles.SlateLight)
	}
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive characters with the same style
	var result strings.Builder
	var batch strings.Builder
	batchMatch := false
	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if batchMatch {
			result.WriteString(match.Render(batch.String()))
		} else {
			result.WriteString(normal.Render(batch.String()))
		}
		batch.Reset()
	}
	for i, r := range text {
		if matchSet[i] != batchMatch {
			flush()
			batchMatch = matchSet[i]
		}
		batch.WriteRune(r)
	}
	flush()

	return result.String()
}

func (o FilterModal) renderResults(b *strings.Builder, modalWidth, maxResults int) {
	if len(o.results) == 0 && o.input.Value() != "" {
		b.WriteString(styles.DimStyle.Render("No matches found"))
		return
	}
	if len(o.results) == 0 {
		return
	}

	// keep the cursor inside the visible window
	start := 0
	if o.cursor >= maxResults {
		start = o.cursor - maxResults + 1
	}
	end := min(start+maxResults, len(o.results))

	for i := start; i < end; i++ {
		result := o.results[i]
		selected := i == o.cursor

		var line strings.Builder

		badge := "MOV"
		if result.Category.Kind() == domain.KindTV {
			badge = "TV"
		}
		line.WriteString(styles.DimBadgeStyle.Render(fmt.Sprintf("%-3s", badge)))
		line.WriteString(" ")

		// Matched indexes refer to the bare title, so truncation is the only
		// change made to it
		title := styles.Truncate(result.Title, max(modalWidth-30, 10))
		line.WriteString(highlightMatches(title, result.MatchedIndexes, selected))

		if y := result.Item.Year(); y > 0 {
			line.WriteString(styles.DimStyle.Render(fmt.Sprintf(" (%d)", y)))
		}
		line.WriteString(styles.DimStyle.Render("  " + result.Category.Title()))

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(o.results) > end {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-end)))
	}
}
