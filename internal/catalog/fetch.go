package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/marquee/internal/domain"
)

const defaultConcurrency = 4

// pageFetcher returns one page of results and the total page count
type pageFetcher[T any] func(ctx context.Context, page int) ([]T, int, error)

// fetchPages loads page 1 to learn the page count, then pages 2..maxPages
// concurrently. Results are concatenated in page order regardless of
// completion order. onProgress is called once per completed page.
func fetchPages[T any](
	ctx context.Context,
	fetch pageFetcher[T],
	maxPages int,
	onProgress domain.ProgressFunc,
) ([]T, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	first, total, err := fetch(ctx, 1)
	if err != nil {
		return nil, err
	}
	if total > maxPages {
		total = maxPages
	}
	if total < 1 {
		total = 1
	}
	if onProgress != nil {
		onProgress(1, total)
	}
	if total == 1 {
		return first, nil
	}

	pages := make([][]T, total)
	pages[0] = first

	var mu sync.Mutex
	loaded := 1

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)
	for page := 2; page <= total; page++ {
		g.Go(func() error {
			items, _, err := fetch(gctx, page)
			if err != nil {
				return err
			}
			pages[page-1] = items

			mu.Lock()
			loaded++
			if onProgress != nil {
				onProgress(loaded, total)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []T
	for _, p := range pages {
		all = append(all, p...)
	}
	return all, nil
}

// dedupe drops repeated ids across pages, keeping the first occurrence
func dedupe(items []*domain.CatalogItem) []*domain.CatalogItem {
	seen := make(map[int]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if item == nil || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
