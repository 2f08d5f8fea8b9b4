package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	TMDBTeal   = lipgloss.Color("#01B4E4")
	TMDBGreen  = lipgloss.Color("#90CEA1")
	NavyDark   = lipgloss.Color("#0D253F")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Yellow     = lipgloss.Color("#FBBF24")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(TMDBTeal)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(TMDBGreen)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Yellow)
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(NavyDark).
			Background(TMDBGreen).
			Bold(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Bold(true).
			Padding(0, 1)
)

// Banner styles
var (
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(TMDBTeal).
			Padding(0, 2)

	BannerTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true)
)

// Carousel row styles
var (
	RowTitleStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Bold(true)

	FocusedRowTitleStyle = lipgloss.NewStyle().
				Foreground(TMDBTeal).
				Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateLight).
			Padding(0, 1)

	SelectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(TMDBTeal).
				Padding(0, 1)

	PageIndicatorStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TMDBTeal).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(NavyDark).
			Background(TMDBGreen).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(TMDBTeal)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(TMDBTeal)
)

// Match highlight styles for filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(TMDBTeal).
				Bold(true)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Helper functions

// Truncate truncates a string to the given display width with ellipsis.
// Wide runes count as two columns.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Pad pads or truncates a string to exactly the given display width
func Pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "")
	return runewidth.FillRight(s, width)
}

// RenderRating renders a vote average as a star rating
func RenderRating(vote float64) string {
	if vote <= 0 {
		return DimStyle.Render("★ -")
	}
	return RatingStyle.Render(fmt.Sprintf("★ %.1f", vote))
}
