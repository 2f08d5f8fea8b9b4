package tmdb

// ListResponse is the paged envelope returned by listing and search endpoints
type ListResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Result is a single listing or multi-search entry. Movies carry Title and
// ReleaseDate, shows carry Name and FirstAirDate.
type Result struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	BackdropPath *string `json:"backdrop_path"`
	PosterPath   *string `json:"poster_path"`
	ProfilePath  *string `json:"profile_path,omitempty"` // person results
	MediaType    string  `json:"media_type,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Adult        bool    `json:"adult"`
}

// Genre is a named genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the /movie/{id} response
type MovieDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Tagline     string  `json:"tagline"`
	Overview    string  `json:"overview"`
	Status      string  `json:"status"`
	Runtime     *int    `json:"runtime"`
	Adult       bool    `json:"adult"`
	VoteAverage float64 `json:"vote_average"`
	Genres      []Genre `json:"genres"`
	Homepage    string  `json:"homepage"`
	ReleaseDate string  `json:"release_date"`
}

// TVDetail is the /tv/{id} response
type TVDetail struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Tagline          string  `json:"tagline"`
	Overview         string  `json:"overview"`
	Status           string  `json:"status"`
	Adult            bool    `json:"adult"`
	VoteAverage      float64 `json:"vote_average"`
	Genres           []Genre `json:"genres"`
	Homepage         string  `json:"homepage"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
	EpisodeRunTime   []int   `json:"episode_run_time"`
}

// AuthResponse is the /authentication response
type AuthResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// ErrorResponse is the body TMDB sends alongside non-2xx statuses
type ErrorResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
