package domain

import (
	"fmt"
	"strings"
	"time"
)

// MediaKind distinguishes content types
type MediaKind int

const (
	KindMovie MediaKind = iota
	KindTV
)

// String returns the TMDB path segment for the kind ("movie" or "tv")
func (k MediaKind) String() string {
	if k == KindTV {
		return "tv"
	}
	return "movie"
}

// ParseKind is the inverse of String
func ParseKind(s string) (MediaKind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "tv":
		return KindTV, true
	}
	return KindMovie, false
}

// CatalogItem is a single listing or search result from the catalog.
// Items are immutable once fetched.
type CatalogItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"` // set for movies
	Name         string  `json:"name,omitempty"`  // set for TV shows
	Overview     string  `json:"overview"`
	BackdropPath string  `json:"backdrop_path,omitempty"` // empty when the API returned null
	PosterPath   string  `json:"poster_path,omitempty"`
	MediaType    string  `json:"media_type,omitempty"` // only populated by multi search
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
}

// DisplayTitle returns the title for movies and the name for shows
func (c CatalogItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// HasTitle reports whether the item carries a movie-style title field.
// Search results are classified by this.
func (c CatalogItem) HasTitle() bool {
	return c.Title != ""
}

// Kind infers the media kind from the presence of a title
func (c CatalogItem) Kind() MediaKind {
	if c.HasTitle() {
		return KindMovie
	}
	return KindTV
}

// Year returns the release or first air year, or 0 if unknown
func (c CatalogItem) Year() int {
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(date[:4], "%d", &year); err != nil {
		return 0
	}
	return year
}

// Dataset is the ordered result set for one category.
// It is replaced wholesale on refetch and never mutated in place.
type Dataset struct {
	Category  Category       `json:"category"`
	Items     []*CatalogItem `json:"items"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Len returns the number of items, 0 for a nil dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Items)
}

// Banner returns the hero item (the first item), or nil
func (d *Dataset) Banner() *CatalogItem {
	if d.Len() == 0 {
		return nil
	}
	return d.Items[0]
}

// Carousel returns the items that take part in pagination: everything but
// the banner item.
func (d *Dataset) Carousel() []*CatalogItem {
	if d.Len() <= 1 {
		return nil
	}
	return d.Items[1:]
}

// Detail holds the extended metadata served by the per-item detail endpoint
type Detail struct {
	ID          int       `json:"id"`
	Kind        MediaKind `json:"kind"`
	Title       string    `json:"title"`
	Tagline     string    `json:"tagline,omitempty"`
	Overview    string    `json:"overview"`
	Status      string    `json:"status,omitempty"`
	Runtime     int       `json:"runtime,omitempty"` // minutes; episode runtime for TV
	Adult       bool      `json:"adult,omitempty"`
	VoteAverage float64   `json:"vote_average"`
	Genres      []string  `json:"genres,omitempty"`
	Seasons     int       `json:"seasons,omitempty"`  // TV only
	Episodes    int       `json:"episodes,omitempty"` // TV only
	Homepage    string    `json:"homepage,omitempty"`
}

// FormattedRuntime returns the runtime in a human-readable format
func (d Detail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormattedGenres joins the genre names for display
func (d Detail) FormattedGenres() string {
	return strings.Join(d.Genres, " · ")
}
