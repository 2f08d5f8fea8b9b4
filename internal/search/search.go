// Package search partitions multi-search results and filters the loaded
// category datasets.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// Partition splits results into movie-like items (those carrying a title)
// and show-like items (everything else). Relative order within each bucket
// matches the input.
func Partition(items []*domain.CatalogItem) (movies, shows []*domain.CatalogItem) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.HasTitle() {
			movies = append(movies, item)
		} else {
			shows = append(shows, item)
		}
	}
	return movies, shows
}

// FilterItem is a searchable item together with the category it was loaded in
type FilterItem struct {
	Item     *domain.CatalogItem
	Title    string
	Category domain.Category
}

// FilterResult is a filter match with match metadata for highlighting
type FilterResult struct {
	FilterItem
	MatchedIndexes []int
	Score          int
}

// filterSource implements fuzzy.Source over pre-lowered titles
type filterSource struct {
	items       []FilterItem
	lowerTitles []string
}

func (s filterSource) String(i int) string { return s.lowerTitles[i] }
func (s filterSource) Len() int            { return len(s.items) }

// FilterLocal fuzzy-matches query against every item of the given datasets.
// Results are ordered best match first. Nil datasets are skipped.
func FilterLocal(query string, datasets []*domain.Dataset) []FilterResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	src := gatherItems(datasets)
	if src.Len() == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), src)

	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			FilterItem:     src.items[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

func gatherItems(datasets []*domain.Dataset) filterSource {
	var src filterSource
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		for _, item := range ds.Items {
			if item == nil {
				continue
			}
			title := item.DisplayTitle()
			src.items = append(src.items, FilterItem{
				Item:     item,
				Title:    title,
				Category: ds.Category,
			})
			src.lowerTitles = append(src.lowerTitles, strings.ToLower(title))
		}
	}
	return src
}
