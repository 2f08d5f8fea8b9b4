package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// DetailModal is the item detail overlay. It always renders its frame once
// shown; the body stays empty when the item could not be resolved.
type DetailModal struct {
	visible  bool
	id       int
	item     *domain.CatalogItem
	detail   *domain.Detail
	loading  bool
	err      error
	width    int
	height   int
	imageURL string
	viewport viewport.Model
}

// NewDetailModal creates a detail overlay that builds image URLs from
// imageBaseURL
func NewDetailModal(imageBaseURL string) DetailModal {
	return DetailModal{
		imageURL: imageBaseURL,
		viewport: viewport.New(0, 0),
	}
}

// Show opens the overlay for id. item is nil when the id did not resolve.
func (m *DetailModal) Show(id int, item *domain.CatalogItem) {
	m.visible = true
	m.id = id
	m.item = item
	m.detail = nil
	m.err = nil
	m.loading = false
	m.refresh()
	m.viewport.GotoTop()
}

// Hide dismisses the overlay
func (m *DetailModal) Hide() {
	*m = DetailModal{imageURL: m.imageURL, width: m.width, height: m.height, viewport: m.viewport}
}

// IsVisible returns whether the overlay is shown
func (m DetailModal) IsVisible() bool {
	return m.visible
}

// ID returns the item id the overlay was opened for
func (m DetailModal) ID() int {
	return m.id
}

// Item returns the resolved item, nil on a miss
func (m DetailModal) Item() *domain.CatalogItem {
	return m.item
}

// SetLoading marks extended metadata as being fetched
func (m *DetailModal) SetLoading(loading bool) {
	m.loading = loading
	m.refresh()
}

// SetDetail fills in extended metadata, or records why it is missing
func (m *DetailModal) SetDetail(d *domain.Detail, err error) {
	m.loading = false
	m.detail = d
	m.err = err
	m.refresh()
}

// SetSize updates the component dimensions
func (m *DetailModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refresh()
}

func (m DetailModal) modalWidth() int {
	return min(max(m.width*2/3, 40), 90)
}

func (m DetailModal) modalHeight() int {
	return min(max(m.height*3/4, 12), 30)
}

func (m *DetailModal) refresh() {
	// border 2 + padding 4
	m.viewport.Width = m.modalWidth() - 6
	// border 2 + padding 2 + title 2 + footer 2
	m.viewport.Height = max(m.modalHeight()-8, 3)
	m.viewport.SetContent(m.body(m.viewport.Width))
}

// Update handles scrolling
func (m DetailModal) Update(msg tea.Msg) (DetailModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DetailKeys.ScrollUp):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(keyMsg, DetailKeys.ScrollDown):
			m.viewport.ScrollDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailModal) title() string {
	if m.item != nil {
		return m.item.DisplayTitle()
	}
	return fmt.Sprintf("#%d", m.id)
}

// body renders the scrollable part. An unresolved item leaves it empty.
func (m DetailModal) body(width int) string {
	if m.item == nil || width <= 0 {
		return ""
	}
	item := m.item

	var b strings.Builder

	meta := []string{styles.DimBadgeStyle.Render(strings.ToUpper(item.Kind().String()))}
	if y := item.Year(); y > 0 {
		meta = append(meta, styles.DimStyle.Render(fmt.Sprintf("%d", y)))
	}
	meta = append(meta, styles.RenderRating(item.VoteAverage))
	if d := m.detail; d != nil {
		if rt := d.FormattedRuntime(); rt != "" {
			meta = append(meta, styles.DimStyle.Render(rt))
		}
		if d.Kind == domain.KindTV && d.Seasons > 0 {
			meta = append(meta, styles.DimStyle.Render(fmt.Sprintf("%d seasons · %d episodes", d.Seasons, d.Episodes)))
		}
		if d.Adult {
			meta = append(meta, styles.BadgeStyle.Render("18+"))
		}
	}
	b.WriteString(strings.Join(meta, " "))
	b.WriteString("\n")

	if d := m.detail; d != nil {
		if g := d.FormattedGenres(); g != "" {
			b.WriteString(styles.AccentStyle.Render(wordwrap.String(g, width)))
			b.WriteString("\n")
		}
		if d.Status != "" {
			b.WriteString(styles.DimStyle.Render("Status: " + d.Status))
			b.WriteString("\n")
		}
		if d.Tagline != "" {
			b.WriteString("\n")
			b.WriteString(styles.SubtitleStyle.Italic(true).Render(wordwrap.String(d.Tagline, width)))
			b.WriteString("\n")
		}
	}

	overview := item.Overview
	if m.detail != nil && m.detail.Overview != "" {
		overview = m.detail.Overview
	}
	if overview != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.String(overview, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(styles.Truncate("Backdrop: "+domain.ImageURL(m.imageURL, "original", item.BackdropPath), width)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(styles.Truncate("Poster:   "+domain.ImageURL(m.imageURL, "w500", item.PosterPath), width)))

	switch {
	case m.loading:
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("Loading details..."))
	case m.err != nil:
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render(styles.Truncate("Details unavailable: "+m.err.Error(), width)))
	}

	return b.String()
}

// View renders the overlay
func (m DetailModal) View() string {
	if !m.visible {
		return ""
	}
	width := m.modalWidth() - 6

	title := styles.ModalTitleStyle.Render(styles.Truncate(m.title(), width))
	footer := styles.HelpKeyStyle.Render("o") + styles.HelpDescStyle.Render(" open in browser  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.NewStyle().Height(m.viewport.Height).Render(m.viewport.View()),
		"",
		footer,
	)

	return styles.ModalStyle.Width(m.modalWidth() - 2).Render(content)
}
