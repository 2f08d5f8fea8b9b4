// Package router keeps the in-app navigation history as a stack of paths
// and maps paths to screens.
package router

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnknownRoute is returned by Resolve for paths no screen handles
var ErrUnknownRoute = errors.New("unknown route")

// Route patterns. A {name} segment matches any single path segment.
const (
	PatternHome       = "/"
	PatternMovie      = "/movies/{id}"
	PatternTVHome     = "/tv"
	PatternTV         = "/tv/{id}"
	PatternSearch     = "/search"
	PatternSearchItem = "/search/{id}"
)

// Home returns the movies screen path
func Home() string { return PatternHome }

// Movie returns the path of a movie overlay
func Movie(id int) string { return fmt.Sprintf("/movies/%d", id) }

// TVHome returns the TV screen path
func TVHome() string { return PatternTVHome }

// TV returns the path of a show overlay
func TV(id int) string { return fmt.Sprintf("/tv/%d", id) }

// Search returns the search screen path for keyword
func Search(keyword string) string {
	return PatternSearch + "?" + url.Values{"keyword": {keyword}}.Encode()
}

// SearchItem returns the path of an overlay opened from search results.
// kind ("movie" or "tv") is omitted when empty.
func SearchItem(keyword string, id int, kind string) string {
	q := url.Values{"keyword": {keyword}}
	if kind != "" {
		q.Set("kind", kind)
	}
	return fmt.Sprintf("/search/%d?%s", id, q.Encode())
}

// Params holds the named segments captured by Match
type Params map[string]string

// Int returns the named parameter as an integer
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("missing route parameter %q", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("route parameter %q: %w", name, err)
	}
	return n, nil
}

// Match reports whether path matches pattern and returns the captured
// parameters. The query string of path is ignored.
func Match(pattern, path string) (Params, bool) {
	path, _, _ = strings.Cut(path, "?")

	want := splitPath(pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	params := Params{}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

// Query returns the parsed query string of path
func Query(path string) url.Values {
	_, raw, ok := strings.Cut(path, "?")
	if !ok {
		return url.Values{}
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}
	}
	return values
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Screen identifies a top-level view
type Screen int

const (
	ScreenMovies Screen = iota
	ScreenTV
	ScreenSearch
)

func (s Screen) String() string {
	switch s {
	case ScreenTV:
		return "tv"
	case ScreenSearch:
		return "search"
	default:
		return "movies"
	}
}

// Location is a resolved path: the screen to show, the overlay item if any,
// and the search keyword for search paths.
type Location struct {
	Screen  Screen
	ItemID  int
	HasItem bool
	Keyword string
	Kind    string // search items only, empty when the path has none
}

// Resolve maps a path to a Location
func Resolve(path string) (Location, error) {
	keyword := Query(path).Get("keyword")

	if _, ok := Match(PatternHome, path); ok {
		return Location{Screen: ScreenMovies}, nil
	}
	if _, ok := Match(PatternTVHome, path); ok {
		return Location{Screen: ScreenTV}, nil
	}
	if _, ok := Match(PatternSearch, path); ok {
		return Location{Screen: ScreenSearch, Keyword: keyword}, nil
	}

	itemRoutes := []struct {
		pattern string
		screen  Screen
	}{
		{PatternMovie, ScreenMovies},
		{PatternTV, ScreenTV},
		{PatternSearchItem, ScreenSearch},
	}
	for _, r := range itemRoutes {
		params, ok := Match(r.pattern, path)
		if !ok {
			continue
		}
		id, err := params.Int("id")
		if err != nil {
			return Location{}, fmt.Errorf("%w: %s: %w", ErrUnknownRoute, path, err)
		}
		loc := Location{Screen: r.screen, ItemID: id, HasItem: true}
		if r.screen == ScreenSearch {
			loc.Keyword = keyword
			loc.Kind = Query(path).Get("kind")
		}
		return loc, nil
	}

	return Location{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// History is a stack of visited paths. The bottom entry is never popped.
type History struct {
	paths []string
}

// NewHistory creates a history rooted at start ("/" when empty)
func NewHistory(start string) *History {
	if start == "" {
		start = PatternHome
	}
	return &History{paths: []string{start}}
}

// Current returns the top path
func (h *History) Current() string {
	return h.paths[len(h.paths)-1]
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.paths)
}

// Push adds path on top. Pushing the current path again is a no-op.
func (h *History) Push(path string) {
	if path == h.Current() {
		return
	}
	h.paths = append(h.paths, path)
}

// Back pops the top path and returns the new current path. Returns false
// when only the root entry remains.
func (h *History) Back() (string, bool) {
	if len(h.paths) <= 1 {
		return h.Current(), false
	}
	h.paths = h.paths[:len(h.paths)-1]
	return h.Current(), true
}

// Replace swaps the top path for path
func (h *History) Replace(path string) {
	h.paths[len(h.paths)-1] = path
}

// Reset clears the history down to a single root entry
func (h *History) Reset(root string) {
	if root == "" {
		root = PatternHome
	}
	h.paths = []string{root}
}
