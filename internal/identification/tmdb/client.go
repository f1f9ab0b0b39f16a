package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Result represents a single TMDB movie search match.
type Result struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Genre is a single genre entry on a movie detail record.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Video is one entry of the video-clip appendix on a detail record.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Details captures the full movie payload including the videos appendix.
type Details struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"`
	Genres      []Genre `json:"genres"`
	Videos      struct {
		Results []Video `json:"results"`
	} `json:"videos"`
}

// Provider is a single streaming provider entry.
type Provider struct {
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// RegionOffers groups the provider lists for one region.
type RegionOffers struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
}

// ProvidersResponse models the watch-providers payload keyed by region code.
type ProvidersResponse struct {
	ID      int64                   `json:"id"`
	Results map[string]RegionOffers `json:"results"`
}

// Searcher defines the TMDB operations used by the identification pipeline.
type Searcher interface {
	SearchMovie(ctx context.Context, query string) (*Response, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*Details, error)
	GetWatchProviders(ctx context.Context, movieID int64) (*ProvidersResponse, error)
	GetSimilar(ctx context.Context, movieID int64) (*Response, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit caps outbound requests per second. TMDB allows ~50 rps on the
// free tier; the fan-out over ranked candidates makes a limiter worthwhile.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches TMDB for the supplied title. An empty result list is a
// valid outcome, not an error.
func (c *Client) SearchMovie(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload Response
	if err := c.getJSON(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID, with the videos appendix
// attached in the same request.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Details, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	params := url.Values{}
	params.Set("append_to_response", "videos")

	var payload Details
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetWatchProviders fetches the regional streaming availability for a movie.
func (c *Client) GetWatchProviders(ctx context.Context, movieID int64) (*ProvidersResponse, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload ProvidersResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/watch/providers", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetSimilar fetches the similar-titles relation for a movie.
func (c *Client) GetSimilar(ctx context.Context, movieID int64) (*Response, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Response
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/similar", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
