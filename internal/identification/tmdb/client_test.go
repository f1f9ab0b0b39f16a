package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelid/internal/identification/tmdb"
)

func newClient(t *testing.T, baseURL string) *tmdb.Client {
	t.Helper()
	client, err := tmdb.New("test-key", baseURL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", "", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("api_key") != "test-key" {
			t.Fatalf("expected api_key parameter, got %q", r.URL.RawQuery)
		}
		if query.Get("query") != "Star Wars" {
			t.Fatalf("unexpected query %q", query.Get("query"))
		}
		if query.Get("language") != "en-US" {
			t.Fatalf("expected language parameter, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":11,"title":"Star Wars","release_date":"1977-05-25","poster_path":"/sw.jpg","vote_average":8.2}
		],"total_pages":1,"total_results":1}`))
	}))
	t.Cleanup(server.Close)

	resp, err := newClient(t, server.URL).SearchMovie(context.Background(), "Star Wars")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 11 || resp.Results[0].Title != "Star Wars" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestSearchMovieEmptyResultsIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	}))
	t.Cleanup(server.Close)

	resp, err := newClient(t, server.URL).SearchMovie(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected no results, got %+v", resp.Results)
	}
}

func TestSearchMovieRejectsEmptyQuery(t *testing.T) {
	if _, err := newClient(t, "https://example.com").SearchMovie(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestGetMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/11" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "videos" {
			t.Fatalf("expected videos appendix requested, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":11,"title":"Star Wars","release_date":"1977-05-25",
			"poster_path":"/sw.jpg","vote_average":8.2,"runtime":121,
			"genres":[{"id":12,"name":"Adventure"}],
			"videos":{"results":[{"key":"trail1","site":"YouTube","type":"Trailer"}]}}`))
	}))
	t.Cleanup(server.Close)

	details, err := newClient(t, server.URL).GetMovieDetails(context.Background(), 11)
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	if details.Runtime != 121 || len(details.Genres) != 1 || details.Genres[0].Name != "Adventure" {
		t.Fatalf("unexpected details: %+v", details)
	}
	if len(details.Videos.Results) != 1 || details.Videos.Results[0].Key != "trail1" {
		t.Fatalf("unexpected videos appendix: %+v", details.Videos.Results)
	}
}

func TestGetWatchProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/11/watch/providers" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":11,"results":{"US":{
			"link":"https://tmdb/watch",
			"flatrate":[{"provider_name":"Disney Plus","logo_path":"/dp.jpg"}],
			"rent":[{"provider_name":"Apple TV","logo_path":"/atv.jpg"}]
		}}}`))
	}))
	t.Cleanup(server.Close)

	providers, err := newClient(t, server.URL).GetWatchProviders(context.Background(), 11)
	if err != nil {
		t.Fatalf("GetWatchProviders returned error: %v", err)
	}
	offers, ok := providers.Results["US"]
	if !ok {
		t.Fatalf("expected US region, got %+v", providers.Results)
	}
	if len(offers.Flatrate) != 1 || offers.Flatrate[0].ProviderName != "Disney Plus" {
		t.Fatalf("unexpected flatrate offers: %+v", offers.Flatrate)
	}
	if len(offers.Rent) != 1 || offers.Rent[0].ProviderName != "Apple TV" {
		t.Fatalf("unexpected rent offers: %+v", offers.Rent)
	}
}

func TestGetSimilar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/11/similar" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":1891,"title":"The Empire Strikes Back","release_date":"1980-05-20"},
			{"id":1892,"title":"Return of the Jedi","release_date":"1983-05-25"}
		]}`))
	}))
	t.Cleanup(server.Close)

	resp, err := newClient(t, server.URL).GetSimilar(context.Background(), 11)
	if err != nil {
		t.Fatalf("GetSimilar returned error: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[0].Title != "The Empire Strikes Back" {
		t.Fatalf("unexpected similar results: %+v", resp.Results)
	}
}

func TestClientSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	if _, err := newClient(t, server.URL).SearchMovie(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
