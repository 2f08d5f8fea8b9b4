package domain

// Category is a named content bucket with its own dataset.
// The value doubles as the TMDB listing path.
type Category string

const (
	MovieNowPlaying Category = "movie/now_playing"
	MoviePopular    Category = "movie/popular"
	MovieTopRated   Category = "movie/top_rated"
	MovieUpcoming   Category = "movie/upcoming"

	TVAiringToday Category = "tv/airing_today"
	TVOnTheAir    Category = "tv/on_the_air"
	TVPopular     Category = "tv/popular"
	TVTopRated    Category = "tv/top_rated"

	// SearchResults is the single merged dataset produced by multi search
	SearchResults Category = "search/multi"
)

// MovieCategories lists the movie carousels in display order
var MovieCategories = []Category{MovieNowPlaying, MoviePopular, MovieTopRated, MovieUpcoming}

// TVCategories lists the TV carousels in display order
var TVCategories = []Category{TVAiringToday, TVOnTheAir, TVPopular, TVTopRated}

var categoryTitles = map[Category]string{
	MovieNowPlaying: "Now Playing Movies",
	MoviePopular:    "Latest Movies",
	MovieTopRated:   "Top Rated Movies",
	MovieUpcoming:   "Upcoming Movies",
	TVAiringToday:   "Airing Today",
	TVOnTheAir:      "On The Air",
	TVPopular:       "Popular TV Shows",
	TVTopRated:      "Top Rated TV Shows",
	SearchResults:   "Search Results",
}

// Title returns the row heading for the category
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Kind returns the media kind served by the category
func (c Category) Kind() MediaKind {
	switch c {
	case TVAiringToday, TVOnTheAir, TVPopular, TVTopRated:
		return KindTV
	default:
		return KindMovie
	}
}

// Path returns the API path for the listing endpoint
func (c Category) Path() string {
	return "/" + string(c)
}

// Valid reports whether c is one of the known listing categories
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok && c != SearchResults
}
