package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// Results is a partitioned multi-search result set
type Results struct {
	Query   string
	Dataset *domain.Dataset // merged results, the overlay's lookup scope
	Movies  []*domain.CatalogItem
	Shows   []*domain.CatalogItem
	Offline bool // served from the local fallback because the API failed
}

// Service runs catalog searches, falling back to cached datasets when the
// API cannot be reached
type Service struct {
	client     domain.SearchClient
	queries    domain.CatalogQueries
	categories []domain.Category
	logger     *slog.Logger
}

// NewService creates a new search service. categories are the cached
// datasets consulted by the offline fallback.
func NewService(client domain.SearchClient, queries domain.CatalogQueries, categories []domain.Category, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:     client,
		queries:    queries,
		categories: categories,
		logger:     logger,
	}
}

// Search performs a multi search for query
func (s *Service) Search(ctx context.Context, query string) (*Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return newResults(query, nil, false), nil
	}

	s.logger.Debug("searching", "query", query)

	items, err := s.client.Search(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailed) || ctx.Err() != nil {
			return nil, err
		}
		s.logger.Warn("server search failed, falling back to local", "error", err)
		return newResults(query, s.localSearch(query), true), nil
	}

	var filtered []*domain.CatalogItem
	for _, item := range items {
		// people have no title either, so Partition would file them as shows
		if item.MediaType == "person" {
			continue
		}
		filtered = append(filtered, item)
	}

	s.logger.Debug("search complete", "query", query, "results", len(filtered))
	return newResults(query, filtered, false), nil
}

// localSearch ranks cached items by edit distance to the query
func (s *Service) localSearch(query string) []*domain.CatalogItem {
	var candidates []*domain.CatalogItem
	var titles []string
	seen := make(map[string]bool)

	for _, cat := range s.categories {
		ds, ok := s.queries.CachedDataset(cat)
		if !ok {
			continue
		}
		for _, item := range ds.Items {
			key := item.Kind().String() + ":" + strconv.Itoa(item.ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, item)
			titles = append(titles, item.DisplayTitle())
		}
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	results := make([]*domain.CatalogItem, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, candidates[r.OriginalIndex])
	}
	return results
}

func newResults(query string, items []*domain.CatalogItem, offline bool) *Results {
	movies, shows := Partition(items)
	return &Results{
		Query: query,
		Dataset: &domain.Dataset{
			Category:  domain.SearchResults,
			Items:     items,
			FetchedAt: time.Now(),
		},
		Movies:  movies,
		Shows:   shows,
		Offline: offline,
	}
}
