package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelid/internal/videoid"
)

// OEmbedResult carries the reduced metadata available without a credential.
type OEmbedResult struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// OEmbedClient queries the public embed-info endpoint. It needs no credential
// and serves as the degraded metadata path.
type OEmbedClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewOEmbedClient creates an oEmbed client.
func NewOEmbedClient(endpoint string, timeout time.Duration) (*OEmbedClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("oembed endpoint required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OEmbedClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Lookup fetches title and author for a video identifier.
func (c *OEmbedClient) Lookup(ctx context.Context, id string) (*OEmbedResult, error) {
	params := url.Values{}
	params.Set("url", videoid.WatchURL(id))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed returned %d", resp.StatusCode)
	}
	var payload OEmbedResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}
