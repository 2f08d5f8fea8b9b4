package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathBuilders(t *testing.T) {
	assert.Equal(t, "/", Home())
	assert.Equal(t, "/movies/550", Movie(550))
	assert.Equal(t, "/tv", TVHome())
	assert.Equal(t, "/tv/1396", TV(1396))
	assert.Equal(t, "/search?keyword=star+wars", Search("star wars"))
	assert.Equal(t, "/search/11?keyword=star+wars", SearchItem("star wars", 11, ""))
	assert.Equal(t, "/search/11?keyword=star+wars&kind=tv", SearchItem("star wars", 11, "tv"))
}

func TestMatch(t *testing.T) {
	params, ok := Match(PatternMovie, "/movies/550")
	require.True(t, ok)
	id, err := params.Int("id")
	require.NoError(t, err)
	assert.Equal(t, 550, id)

	params, ok = Match(PatternSearchItem, "/search/7?keyword=dune")
	require.True(t, ok)
	assert.Equal(t, "7", params["id"])

	_, ok = Match(PatternMovie, "/movies")
	assert.False(t, ok)
	_, ok = Match(PatternMovie, "/tv/550")
	assert.False(t, ok)
	_, ok = Match(PatternMovie, "/movies/550/cast")
	assert.False(t, ok)

	_, ok = Match(PatternHome, "/")
	assert.True(t, ok)
}

func TestParamsInt(t *testing.T) {
	params := Params{"id": "abc"}
	_, err := params.Int("id")
	assert.Error(t, err)

	_, err = params.Int("missing")
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "star wars", Query(Search("star wars")).Get("keyword"))
	assert.Empty(t, Query("/search").Get("keyword"))
	assert.Empty(t, Query("/search?%zz").Get("keyword"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want Location
	}{
		{"/", Location{Screen: ScreenMovies}},
		{"/movies/42", Location{Screen: ScreenMovies, ItemID: 42, HasItem: true}},
		{"/tv", Location{Screen: ScreenTV}},
		{"/tv/9", Location{Screen: ScreenTV, ItemID: 9, HasItem: true}},
		{"/search?keyword=alien", Location{Screen: ScreenSearch, Keyword: "alien"}},
		{"/search/3?keyword=alien", Location{Screen: ScreenSearch, ItemID: 3, HasItem: true, Keyword: "alien"}},
		{"/search/3?keyword=alien&kind=tv", Location{Screen: ScreenSearch, ItemID: 3, HasItem: true, Keyword: "alien", Kind: "tv"}},
		{"/movies/3?kind=tv", Location{Screen: ScreenMovies, ItemID: 3, HasItem: true}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("/people/1")
	assert.ErrorIs(t, err, ErrUnknownRoute)

	_, err = Resolve("/movies/not-a-number")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestHistory(t *testing.T) {
	h := NewHistory("")
	assert.Equal(t, "/", h.Current())

	h.Push(Movie(1))
	h.Push(Movie(1))
	assert.Equal(t, 2, h.Len())

	h.Push(TVHome())
	assert.Equal(t, "/tv", h.Current())

	path, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "/movies/1", path)

	h.Replace(Movie(2))
	assert.Equal(t, "/movies/2", h.Current())

	path, ok = h.Back()
	require.True(t, ok)
	assert.Equal(t, "/", path)

	// root is never popped
	path, ok = h.Back()
	assert.False(t, ok)
	assert.Equal(t, "/", path)

	h.Push(Search("x"))
	h.Reset(TVHome())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "/tv", h.Current())
}
