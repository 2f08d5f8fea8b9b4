package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestPartition(t *testing.T) {
	items := []*domain.CatalogItem{
		{ID: 1, Title: "A"},
		{ID: 2, Name: "B"},
	}

	movies, shows := Partition(items)
	require.Len(t, movies, 1)
	require.Len(t, shows, 1)
	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, 2, shows[0].ID)
}

func TestPartitionPreservesOrder(t *testing.T) {
	items := []*domain.CatalogItem{
		{ID: 1, Name: "Show One"},
		{ID: 2, Title: "Movie One"},
		nil,
		{ID: 3, Name: "Show Two"},
		{ID: 4, Title: "Movie Two"},
		{ID: 5}, // neither field set counts as a show
	}

	movies, shows := Partition(items)
	assert.Equal(t, []int{2, 4}, ids(movies))
	assert.Equal(t, []int{1, 3, 5}, ids(shows))
}

func TestPartitionEmpty(t *testing.T) {
	movies, shows := Partition(nil)
	assert.Empty(t, movies)
	assert.Empty(t, shows)
}

func TestFilterLocal(t *testing.T) {
	popular := &domain.Dataset{Category: domain.MoviePopular, Items: []*domain.CatalogItem{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Inception"},
	}}
	tv := &domain.Dataset{Category: domain.TVPopular, Items: []*domain.CatalogItem{
		{ID: 3, Name: "Breaking Bad"},
	}}

	results := FilterLocal("matrix", []*domain.Dataset{popular, nil, tv})
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Item.ID)
	assert.Equal(t, domain.MoviePopular, results[0].Category)
	assert.NotEmpty(t, results[0].MatchedIndexes)

	results = FilterLocal("BAD", []*domain.Dataset{popular, tv})
	require.Len(t, results, 1)
	assert.Equal(t, domain.TVPopular, results[0].Category)

	assert.Nil(t, FilterLocal("  ", []*domain.Dataset{popular}))
	assert.Nil(t, FilterLocal("matrix", nil))
}

type fakeSearchClient struct {
	items []*domain.CatalogItem
	err   error
	calls []string
}

func (f *fakeSearchClient) Search(ctx context.Context, query string) ([]*domain.CatalogItem, error) {
	f.calls = append(f.calls, query)
	return f.items, f.err
}

type fakeQueries map[domain.Category]*domain.Dataset

func (f fakeQueries) CachedDataset(cat domain.Category) (*domain.Dataset, bool) {
	ds, ok := f[cat]
	return ds, ok
}

func (f fakeQueries) CachedDetail(kind domain.MediaKind, id int) (*domain.Detail, bool) {
	return nil, false
}

func TestServiceSearchPartitionsAndDropsPeople(t *testing.T) {
	client := &fakeSearchClient{items: []*domain.CatalogItem{
		{ID: 10, Title: "Dune", MediaType: "movie"},
		{ID: 11, Name: "Timothée Chalamet", MediaType: "person"},
		{ID: 12, Name: "Dune: Prophecy", MediaType: "tv"},
	}}
	svc := NewService(client, fakeQueries{}, nil, nil)

	res, err := svc.Search(context.Background(), "  dune ")
	require.NoError(t, err)
	assert.Equal(t, []string{"dune"}, client.calls)
	assert.Equal(t, "dune", res.Query)
	assert.False(t, res.Offline)
	assert.Equal(t, []int{10}, ids(res.Movies))
	assert.Equal(t, []int{12}, ids(res.Shows))

	require.NotNil(t, res.Dataset)
	assert.Equal(t, domain.SearchResults, res.Dataset.Category)
	assert.Equal(t, []int{10, 12}, ids(res.Dataset.Items))
}

func TestServiceEmptyQuerySkipsClient(t *testing.T) {
	client := &fakeSearchClient{}
	svc := NewService(client, fakeQueries{}, nil, nil)

	res, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, client.calls)
	assert.Empty(t, res.Movies)
	assert.Empty(t, res.Shows)
}

func TestServiceFallsBackToCachedDatasets(t *testing.T) {
	client := &fakeSearchClient{err: domain.ErrServerOffline}
	queries := fakeQueries{
		domain.MoviePopular: {Category: domain.MoviePopular, Items: []*domain.CatalogItem{
			{ID: 1, Title: "Star Wars"},
			{ID: 2, Title: "Alien"},
		}},
		domain.MovieTopRated: {Category: domain.MovieTopRated, Items: []*domain.CatalogItem{
			{ID: 1, Title: "Star Wars"},
		}},
		domain.TVPopular: {Category: domain.TVPopular, Items: []*domain.CatalogItem{
			{ID: 1, Name: "Star Trek"},
		}},
	}
	cats := []domain.Category{domain.MoviePopular, domain.MovieTopRated, domain.TVPopular, domain.TVTopRated}
	svc := NewService(client, queries, cats, nil)

	res, err := svc.Search(context.Background(), "star")
	require.NoError(t, err)
	assert.True(t, res.Offline)
	// movie 1 appears in two categories but is returned once; tv 1 is distinct
	assert.Equal(t, []int{1}, ids(res.Movies))
	assert.Equal(t, []int{1}, ids(res.Shows))
}

func TestServiceAuthFailureIsReturned(t *testing.T) {
	client := &fakeSearchClient{err: domain.ErrAuthFailed}
	svc := NewService(client, fakeQueries{}, nil, nil)

	_, err := svc.Search(context.Background(), "dune")
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestServiceCancelledContextIsReturned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &fakeSearchClient{err: context.Canceled}
	svc := NewService(client, fakeQueries{}, nil, nil)

	_, err := svc.Search(ctx, "dune")
	assert.ErrorIs(t, err, context.Canceled)
}

func ids(items []*domain.CatalogItem) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
