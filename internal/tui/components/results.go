package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ResultsGrid shows a multi-search result set as a movie grid followed by
// a TV grid. It is not paginated; a single cursor walks both sections.
type ResultsGrid struct {
	results *search.Results
	cursor  int
	width   int
	height  int
	columns int
}

// NewResultsGrid creates a grid with columns cards per line
func NewResultsGrid(columns int) ResultsGrid {
	return ResultsGrid{columns: max(columns, 1)}
}

// SetResults replaces the result set and resets the cursor
func (g *ResultsGrid) SetResults(r *search.Results) {
	g.results = r
	g.cursor = 0
}

// Results returns the current result set, nil before the first search
func (g ResultsGrid) Results() *search.Results {
	return g.results
}

// SetSize updates the component dimensions
func (g *ResultsGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// Len returns the number of selectable results
func (g ResultsGrid) Len() int {
	if g.results == nil {
		return 0
	}
	return len(g.results.Movies) + len(g.results.Shows)
}

// Cursor returns the linear cursor position
func (g ResultsGrid) Cursor() int {
	return g.cursor
}

// Selected returns the item under the cursor
func (g ResultsGrid) Selected() *domain.CatalogItem {
	if g.results == nil {
		return nil
	}
	movies := g.results.Movies
	if g.cursor < len(movies) {
		return movies[g.cursor]
	}
	idx := g.cursor - len(movies)
	if idx < len(g.results.Shows) {
		return g.results.Shows[idx]
	}
	return nil
}

// Move shifts the cursor by delta, clamped to the result range
func (g *ResultsGrid) Move(delta int) {
	n := g.Len()
	if n == 0 {
		g.cursor = 0
		return
	}
	g.cursor = min(max(g.cursor+delta, 0), n-1)
}

// MoveRow moves the cursor one grid line up (-1) or down (+1)
func (g *ResultsGrid) MoveRow(dir int) {
	g.Move(dir * g.columns)
}

// block is a contiguous piece of rendered output
type block struct {
	text       string
	hasCursor  bool
	lineHeight int
}

// View renders the grid, scrolled so the cursor line is visible
func (g ResultsGrid) View() string {
	if g.results == nil {
		return styles.DimStyle.Render("Press / to search TMDB")
	}
	if g.Len() == 0 {
		return styles.DimStyle.Render(fmt.Sprintf("No results for %q", g.results.Query))
	}

	view := CarouselView{Width: g.width, PageSize: g.columns}
	var blocks []block

	addSection := func(title string, items []*domain.CatalogItem, offset int) {
		if len(items) == 0 {
			return
		}
		heading := styles.RowTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))
		blocks = append(blocks, block{text: heading, lineHeight: 1})
		for start := 0; start < len(items); start += g.columns {
			end := min(start+g.columns, len(items))
			cursor := -1
			if c := g.cursor - offset; c >= start && c < end {
				cursor = c - start
			}
			blocks = append(blocks, block{
				text:       view.RenderStrip(items[start:end], cursor),
				hasCursor:  cursor >= 0,
				lineHeight: StripHeight,
			})
		}
	}

	addSection("Movies", g.results.Movies, 0)
	addSection("TV Shows", g.results.Shows, len(g.results.Movies))

	// drop leading blocks until the cursor block fits
	start := 0
	for {
		used := 0
		fits := false
		for i := start; i < len(blocks); i++ {
			used += blocks[i].lineHeight
			if blocks[i].hasCursor {
				fits = used <= g.height
				break
			}
		}
		if fits || start >= len(blocks)-1 || g.height <= 0 {
			break
		}
		start++
	}

	var out []string
	used := 0
	for _, b := range blocks[start:] {
		if g.height > 0 && used+b.lineHeight > g.height {
			break
		}
		out = append(out, b.text)
		used += b.lineHeight
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// Header renders the one-line summary shown above the grid
func (g ResultsGrid) Header() string {
	if g.results == nil {
		return ""
	}
	parts := []string{
		styles.TitleStyle.Render(fmt.Sprintf("Results for %q", g.results.Query)),
		styles.DimStyle.Render(fmt.Sprintf("%d movies, %d shows", len(g.results.Movies), len(g.results.Shows))),
	}
	if g.results.Offline {
		parts = append(parts, styles.DimBadgeStyle.Render("OFFLINE"))
	}
	return strings.Join(parts, "  ")
}
