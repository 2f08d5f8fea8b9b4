package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mmcdole/marquee/internal/carousel"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	// cardLines is the number of content lines inside a card
	cardLines = 4

	// StripHeight is the rendered height of a card strip (content + border)
	StripHeight = cardLines + 2

	minCardWidth = 10
)

// CarouselView renders one page of a carousel row as a strip of cards.
// Every strip it produces is exactly Width columns by StripHeight lines so
// two strips can be spliced together by SlideFrame.
type CarouselView struct {
	Width    int
	PageSize int
}

// CardWidth returns the outer width of a single card
func (v CarouselView) CardWidth() int {
	size := v.PageSize
	if size <= 0 {
		size = carousel.DefaultPageSize
	}
	return max(v.Width/size, minCardWidth)
}

// RenderStrip renders items as a row of cards. cursor is the selected
// position within items, or -1 for none.
func (v CarouselView) RenderStrip(items []*domain.CatalogItem, cursor int) string {
	if v.Width <= 0 {
		return ""
	}
	cw := v.CardWidth()

	cards := make([]string, 0, len(items))
	for i, item := range items {
		cards = append(cards, RenderCard(item, cw, i == cursor))
	}
	if len(cards) == 0 {
		return padLines("", v.Width, StripHeight)
	}

	return padLines(lipgloss.JoinHorizontal(lipgloss.Top, cards...), v.Width, StripHeight)
}

// RenderCard renders a single catalog item card of the given outer width
func RenderCard(item *domain.CatalogItem, width int, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	// border 2 + padding 2
	inner := max(width-4, 1)

	titleStyle := styles.SubtitleStyle
	if selected {
		titleStyle = styles.TitleStyle
	}

	wrapped := strings.Split(wordwrap.String(item.DisplayTitle(), inner), "\n")
	title := make([]string, 2)
	for i := range title {
		if i < len(wrapped) {
			title[i] = styles.Truncate(wrapped[i], inner)
		}
	}
	if len(wrapped) > 2 {
		title[1] = styles.Truncate(wrapped[1]+"...", inner)
	}

	year := ""
	if y := item.Year(); y > 0 {
		year = fmt.Sprintf("%d", y)
	}

	content := strings.Join([]string{
		titleStyle.Render(title[0]),
		titleStyle.Render(title[1]),
		styles.DimStyle.Render(year),
		styles.RenderRating(item.VoteAverage),
	}, "\n")

	return style.Width(width - 2).Height(cardLines).Render(content)
}

// SlideFrame returns frame number frame (0..frames) of a horizontal slide
// from one strip to another. Both strips are normalised to width columns;
// forward slides move content to the left, backward slides to the right.
// Frame 0 shows from, frame frames shows to.
func SlideFrame(from, to string, width, frame, frames int, dir carousel.Direction) string {
	if width <= 0 {
		return ""
	}
	if frames <= 0 || frame >= frames {
		return to
	}
	frame = max(frame, 0)

	height := max(lineCount(from), lineCount(to))
	fromLines := strings.Split(padLines(from, width, height), "\n")
	toLines := strings.Split(padLines(to, width, height), "\n")

	shift := width * frame / frames

	out := make([]string, height)
	for i := range out {
		var joined string
		var offset int
		if dir == carousel.Backward {
			joined = toLines[i] + fromLines[i]
			offset = width - shift
		} else {
			joined = fromLines[i] + toLines[i]
			offset = shift
		}
		out[i] = ansi.Cut(joined, offset, offset+width)
	}
	return strings.Join(out, "\n")
}

// padLines pads or truncates s to exactly width columns and height lines
func padLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		w := ansi.StringWidth(line)
		switch {
		case w > width:
			lines[i] = ansi.Truncate(line, width, "")
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

// Row is everything needed to render one carousel row
type Row struct {
	Category domain.Category
	Focused  bool
	Page     int
	Pages    int
	Strip    string // pre-rendered strip, possibly mid-slide
	Loading  bool
	Loaded   int
	Total    int
	Err      error
	Spinner  string
}

// RenderRow renders a row heading followed by its strip, a loading line or
// an error line
func RenderRow(r Row, width int) string {
	titleStyle := styles.RowTitleStyle
	if r.Focused {
		titleStyle = styles.FocusedRowTitleStyle
	}
	heading := titleStyle.Render(r.Category.Title())
	if r.Pages > 1 {
		indicator := styles.PageIndicatorStyle.Render(fmt.Sprintf("%d/%d", r.Page+1, r.Pages))
		gap := max(width-lipgloss.Width(heading)-lipgloss.Width(indicator), 1)
		heading += strings.Repeat(" ", gap) + indicator
	}

	var body string
	switch {
	case r.Strip != "":
		body = r.Strip
	case r.Loading:
		text := "Loading..."
		if r.Total > 0 {
			text = fmt.Sprintf("Loading page %d/%d...", r.Loaded, r.Total)
		}
		body = padLines(r.Spinner+" "+styles.DimStyle.Render(text), width, StripHeight)
	case r.Err != nil:
		body = padLines(styles.DimStyle.Render("Could not load "+r.Category.Title()+": "+r.Err.Error()), width, StripHeight)
	default:
		body = padLines(styles.DimStyle.Render("Nothing here yet"), width, StripHeight)
	}

	return heading + "\n" + body
}
