package identification_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reelid/internal/identification"
	"reelid/internal/identification/tmdb"
)

// stubCatalog implements tmdb.Searcher with canned per-title behavior.
type stubCatalog struct {
	searchResults map[string][]tmdb.Result
	searchErr     map[string]error
	details       map[int64]*tmdb.Details
	detailsErr    map[int64]error
	providers     *tmdb.ProvidersResponse
	providersErr  error
	similar       *tmdb.Response
	similarErr    error
}

func (s *stubCatalog) SearchMovie(_ context.Context, query string) (*tmdb.Response, error) {
	if err, ok := s.searchErr[query]; ok {
		return nil, err
	}
	return &tmdb.Response{Results: s.searchResults[query]}, nil
}

func (s *stubCatalog) GetMovieDetails(_ context.Context, movieID int64) (*tmdb.Details, error) {
	if err, ok := s.detailsErr[movieID]; ok {
		return nil, err
	}
	details, ok := s.details[movieID]
	if !ok {
		return nil, errors.New("unknown movie id")
	}
	return details, nil
}

func (s *stubCatalog) GetWatchProviders(_ context.Context, _ int64) (*tmdb.ProvidersResponse, error) {
	if s.providersErr != nil {
		return nil, s.providersErr
	}
	return s.providers, nil
}

func (s *stubCatalog) GetSimilar(_ context.Context, _ int64) (*tmdb.Response, error) {
	if s.similarErr != nil {
		return nil, s.similarErr
	}
	return s.similar, nil
}

func starWarsCatalog() *stubCatalog {
	return &stubCatalog{
		searchResults: map[string][]tmdb.Result{
			"Star Wars": {
				{ID: 11, Title: "Star Wars"},
				{ID: 99, Title: "Star Wars: Some Other Cut"},
			},
		},
		details: map[int64]*tmdb.Details{
			11: {
				ID:          11,
				Title:       "Star Wars",
				Overview:    "A farm boy joins a rebellion.",
				ReleaseDate: "1977-05-25",
				PosterPath:  "/sw.jpg",
				VoteAverage: 8.2,
				Runtime:     121,
				Genres:      []tmdb.Genre{{ID: 12, Name: "Adventure"}, {ID: 878, Name: "Science Fiction"}},
				Videos: struct {
					Results []tmdb.Video `json:"results"`
				}{Results: []tmdb.Video{
					{Key: "featurette1", Site: "YouTube", Type: "Featurette"},
					{Key: "trailerkey99", Site: "YouTube", Type: "Trailer"},
				}},
			},
		},
	}
}

func TestResolverMapsFirstResult(t *testing.T) {
	resolver := identification.NewResolver(starWarsCatalog(), "https://image.tmdb.org/t/p/w500", nil)

	movie, err := resolver.Resolve(context.Background(), "Star Wars")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if movie == nil {
		t.Fatal("expected a resolved movie")
	}
	if movie.CatalogID != 11 {
		t.Fatalf("expected first search result chosen, got id %d", movie.CatalogID)
	}
	if movie.Year != "1977" {
		t.Fatalf("unexpected year %q", movie.Year)
	}
	if movie.Rating != "8.2" {
		t.Fatalf("unexpected rating %q", movie.Rating)
	}
	if movie.Runtime != "121 min" {
		t.Fatalf("unexpected runtime %q", movie.Runtime)
	}
	if movie.Poster != "https://image.tmdb.org/t/p/w500/sw.jpg" {
		t.Fatalf("unexpected poster %q", movie.Poster)
	}
	if len(movie.Genres) != 2 || movie.Genres[0] != "Adventure" {
		t.Fatalf("unexpected genres %v", movie.Genres)
	}
	if !strings.Contains(movie.Trailer, "trailerkey99") {
		t.Fatalf("expected official trailer selected, got %q", movie.Trailer)
	}
}

func TestResolverNoResultsIsNotAnError(t *testing.T) {
	resolver := identification.NewResolver(&stubCatalog{}, "https://img", nil)

	movie, err := resolver.Resolve(context.Background(), "Completely Unknown Title")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if movie != nil {
		t.Fatalf("expected nil movie for zero results, got %+v", movie)
	}
}

func TestResolverPlaceholdersForMissingFields(t *testing.T) {
	catalog := &stubCatalog{
		searchResults: map[string][]tmdb.Result{"Obscure": {{ID: 7}}},
		details: map[int64]*tmdb.Details{
			7: {ID: 7, Title: "Obscure"},
		},
	}
	resolver := identification.NewResolver(catalog, "https://img", nil)

	movie, err := resolver.Resolve(context.Background(), "Obscure")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if movie.Year != "Unknown" || movie.Rating != "N/A" || movie.Runtime != "Unknown" {
		t.Fatalf("expected placeholders, got %+v", movie)
	}
	if movie.Poster != "" || movie.Trailer != "" {
		t.Fatalf("expected empty poster and trailer, got %+v", movie)
	}
}

func TestResolverSurfacesSearchError(t *testing.T) {
	catalog := &stubCatalog{searchErr: map[string]error{"Broken": errors.New("boom")}}
	resolver := identification.NewResolver(catalog, "https://img", nil)

	if _, err := resolver.Resolve(context.Background(), "Broken"); err == nil {
		t.Fatal("expected error from failing search")
	}
}
