package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// MapResults converts API results to domain catalog items
func MapResults(results []Result) []*domain.CatalogItem {
	items := make([]*domain.CatalogItem, 0, len(results))
	for _, r := range results {
		item := mapResult(r)
		items = append(items, &item)
	}
	return items
}

func mapResult(r Result) domain.CatalogItem {
	return domain.CatalogItem{
		ID:           r.ID,
		Title:        r.Title,
		Name:         r.Name,
		Overview:     r.Overview,
		BackdropPath: deref(r.BackdropPath),
		PosterPath:   deref(r.PosterPath),
		MediaType:    r.MediaType,
		ReleaseDate:  r.ReleaseDate,
		FirstAirDate: r.FirstAirDate,
		VoteAverage:  r.VoteAverage,
	}
}

// MapMovieDetail converts a movie detail response
func MapMovieDetail(m MovieDetail) *domain.Detail {
	d := &domain.Detail{
		ID:          m.ID,
		Kind:        domain.KindMovie,
		Title:       m.Title,
		Tagline:     m.Tagline,
		Overview:    m.Overview,
		Status:      m.Status,
		Adult:       m.Adult,
		VoteAverage: m.VoteAverage,
		Genres:      genreNames(m.Genres),
		Homepage:    m.Homepage,
	}
	if m.Runtime != nil {
		d.Runtime = *m.Runtime
	}
	return d
}

// MapTVDetail converts a TV detail response
func MapTVDetail(t TVDetail) *domain.Detail {
	d := &domain.Detail{
		ID:          t.ID,
		Kind:        domain.KindTV,
		Title:       t.Name,
		Tagline:     t.Tagline,
		Overview:    t.Overview,
		Status:      t.Status,
		Adult:       t.Adult,
		VoteAverage: t.VoteAverage,
		Genres:      genreNames(t.Genres),
		Seasons:     t.NumberOfSeasons,
		Episodes:    t.NumberOfEpisodes,
		Homepage:    t.Homepage,
	}
	// episode runtime doubles as the show's runtime
	if len(t.EpisodeRunTime) > 0 {
		d.Runtime = t.EpisodeRunTime[0]
	}
	return d
}

func genreNames(genres []Genre) []string {
	if len(genres) == 0 {
		return nil
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
