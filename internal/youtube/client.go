package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client provides access to the credentialed video metadata API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

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

// NewClient creates a Data API client.
func NewClient(apiKey, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("youtube base url required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Snippet is the structured video metadata returned by the videos endpoint.
type Snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

// Thumbnails lists the thumbnail variants in descending quality.
type Thumbnails struct {
	Maxres  Thumbnail `json:"maxres"`
	High    Thumbnail `json:"high"`
	Medium  Thumbnail `json:"medium"`
	Default Thumbnail `json:"default"`
}

// Thumbnail is a single thumbnail variant.
type Thumbnail struct {
	URL string `json:"url"`
}

// Best returns the highest-quality thumbnail URL present, or empty.
func (t Thumbnails) Best() string {
	for _, variant := range []Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if variant.URL != "" {
			return variant.URL
		}
	}
	return ""
}

type videoListResponse struct {
	Items []struct {
		Snippet Snippet `json:"snippet"`
	} `json:"items"`
}

// VideoSnippet fetches the snippet for a single video identifier.
func (c *Client) VideoSnippet(ctx context.Context, videoID string) (*Snippet, error) {
	params := url.Values{}
	params.Set("id", videoID)
	params.Set("part", "snippet")
	params.Set("key", c.apiKey)

	var payload videoListResponse
	if err := c.getJSON(ctx, "/videos", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}
	return &payload.Items[0].Snippet, nil
}

// CaptionTrack describes one caption track attached to a video.
type CaptionTrack struct {
	Language string `json:"language"`
	Kind     string `json:"trackKind"`
}

type captionListResponse struct {
	Items []struct {
		Snippet CaptionTrack `json:"snippet"`
	} `json:"items"`
}

// ListCaptionTracks fetches the caption-track listing for a video. This only
// reports availability and languages; downloading caption text requires
// elevated auth the service does not hold.
func (c *Client) ListCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	params := url.Values{}
	params.Set("videoId", videoID)
	params.Set("part", "snippet")
	params.Set("key", c.apiKey)

	var payload captionListResponse
	if err := c.getJSON(ctx, "/captions", params, &payload); err != nil {
		return nil, err
	}
	tracks := make([]CaptionTrack, 0, len(payload.Items))
	for _, item := range payload.Items {
		tracks = append(tracks, item.Snippet)
	}
	return tracks, nil
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay  string `json:"textDisplay"`
					TextOriginal string `json:"textOriginal"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// TopComments fetches up to max relevance-ordered top-level comments.
func (c *Client) TopComments(ctx context.Context, videoID string, max int) ([]string, error) {
	if max <= 0 || max > 100 {
		max = 100
	}
	params := url.Values{}
	params.Set("videoId", videoID)
	params.Set("part", "snippet")
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(max))
	params.Set("textFormat", "plainText")
	params.Set("key", c.apiKey)

	var payload commentThreadsResponse
	if err := c.getJSON(ctx, "/commentThreads", params, &payload); err != nil {
		return nil, err
	}
	comments := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		text := item.Snippet.TopLevelComment.Snippet.TextOriginal
		if text == "" {
			text = item.Snippet.TopLevelComment.Snippet.TextDisplay
		}
		if text != "" {
			comments = append(comments, text)
		}
	}
	return comments, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube api %s returned %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
