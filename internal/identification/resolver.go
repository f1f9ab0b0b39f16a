package identification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reelid/internal/identification/tmdb"
	"reelid/internal/logging"
	"reelid/internal/videoid"
)

// Resolver maps candidate titles onto catalog records. Only the first search
// result is considered: a candidate either resolves cleanly or not at all.
type Resolver struct {
	catalog      tmdb.Searcher
	imageBaseURL string
	logger       *slog.Logger
}

// NewResolver builds a resolver over the supplied catalog client.
func NewResolver(catalog tmdb.Searcher, imageBaseURL string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		catalog:      catalog,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		logger:       logging.WithComponent(logger, "resolver"),
	}
}

// Resolve searches the catalog for the title and returns the mapped record.
// A title with no search results returns (nil, nil): that candidate simply
// drops out, it is not a pipeline failure.
func (r *Resolver) Resolve(ctx context.Context, title string) (*ResolvedMovie, error) {
	resp, err := r.catalog.SearchMovie(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}
	if len(resp.Results) == 0 {
		r.logger.Debug("no catalog results", logging.String("title", title))
		return nil, nil
	}

	first := resp.Results[0]
	details, err := r.catalog.GetMovieDetails(ctx, first.ID)
	if err != nil {
		return nil, fmt.Errorf("details for %q (id=%d): %w", title, first.ID, err)
	}

	movie := &ResolvedMovie{
		CatalogID: details.ID,
		Title:     details.Title,
		Year:      releaseYear(details.ReleaseDate),
		Poster:    r.imageURL(details.PosterPath),
		Plot:      details.Overview,
		Rating:    formatRating(details.VoteAverage),
		Runtime:   formatRuntime(details.Runtime),
		Trailer:   trailerURL(details.Videos.Results),
	}
	for _, genre := range details.Genres {
		movie.Genres = append(movie.Genres, genre.Name)
	}

	r.logger.Debug("candidate resolved",
		logging.String("title", movie.Title),
		logging.Int64("catalog_id", movie.CatalogID))
	return movie, nil
}

func (r *Resolver) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return r.imageBaseURL + path
}

func releaseYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return "Unknown"
	}
	return releaseDate[:4]
}

func formatRating(voteAverage float64) string {
	if voteAverage <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", voteAverage)
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d min", minutes)
}

// trailerURL picks the first official YouTube trailer from the videos
// appendix, expressed as a watch URL.
func trailerURL(videos []tmdb.Video) string {
	for _, video := range videos {
		if video.Type == "Trailer" && video.Site == "YouTube" && video.Key != "" {
			return videoid.WatchURL(video.Key)
		}
	}
	return ""
}
