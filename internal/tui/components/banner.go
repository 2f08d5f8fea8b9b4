package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// bannerOverviewLines caps the overview shown in the hero banner
const bannerOverviewLines = 3

// BannerHeight is the rendered height of RenderBanner
const BannerHeight = bannerOverviewLines + 3

// RenderBanner renders the hero item of a dataset: title line, a few lines
// of overview and the backdrop URL. A nil item renders an empty block of
// the same height.
func RenderBanner(item *domain.CatalogItem, width int, imageBaseURL string) string {
	// left border 1 + padding 4
	inner := max(width-5, 10)

	lines := make([]string, 0, BannerHeight)
	if item == nil {
		for len(lines) < BannerHeight {
			lines = append(lines, "")
		}
		return styles.BannerStyle.Width(width - 1).Render(strings.Join(lines, "\n"))
	}

	title := styles.BannerTitleStyle.Render(styles.Truncate(item.DisplayTitle(), inner-20))
	meta := []string{}
	if y := item.Year(); y > 0 {
		meta = append(meta, styles.DimStyle.Render(fmt.Sprintf("%d", y)))
	}
	meta = append(meta, styles.RenderRating(item.VoteAverage))
	lines = append(lines, title+"  "+strings.Join(meta, "  "))
	lines = append(lines, "")

	overview := strings.Split(wordwrap.String(item.Overview, inner), "\n")
	for i := 0; i < bannerOverviewLines; i++ {
		line := ""
		if i < len(overview) {
			line = overview[i]
		}
		if i == bannerOverviewLines-1 && len(overview) > bannerOverviewLines {
			line = styles.Truncate(line+"...", inner)
		}
		lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(line, inner)))
	}

	backdrop := domain.ImageURL(imageBaseURL, "original", item.BackdropPath)
	lines = append(lines, styles.DimStyle.Render(styles.Truncate(backdrop, inner)))

	return styles.BannerStyle.Width(width - 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
