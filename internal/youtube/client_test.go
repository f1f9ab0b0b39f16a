package youtube_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelid/internal/youtube"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := youtube.NewClient("", "https://example.com", time.Second); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestVideoSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "key" {
			t.Fatalf("expected key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("part") != "snippet" {
			t.Fatalf("expected part=snippet, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"items":[{"snippet":{
			"title":"Epic Lightsaber Duel Scene",
			"description":"desc",
			"channelTitle":"Clips",
			"publishedAt":"2020-01-02T03:04:05Z",
			"thumbnails":{"high":{"url":"https://img/high.jpg"},"default":{"url":"https://img/default.jpg"}}
		}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.NewClient("key", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	snippet, err := client.VideoSnippet(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("VideoSnippet returned error: %v", err)
	}
	if snippet.Title != "Epic Lightsaber Duel Scene" {
		t.Fatalf("unexpected title: %q", snippet.Title)
	}
	if got := snippet.Thumbnails.Best(); got != "https://img/high.jpg" {
		t.Fatalf("expected high thumbnail preferred, got %q", got)
	}
}

func TestVideoSnippetNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.NewClient("key", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.VideoSnippet(context.Background(), "missing12345"); err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestThumbnailPreferenceOrder(t *testing.T) {
	thumbs := youtube.Thumbnails{
		Maxres:  youtube.Thumbnail{URL: "maxres"},
		High:    youtube.Thumbnail{URL: "high"},
		Default: youtube.Thumbnail{URL: "default"},
	}
	if got := thumbs.Best(); got != "maxres" {
		t.Fatalf("expected maxres first, got %q", got)
	}
	if got := (youtube.Thumbnails{}).Best(); got != "" {
		t.Fatalf("expected empty for no variants, got %q", got)
	}
}

func TestListCaptionTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/captions" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"items":[
			{"snippet":{"language":"en","trackKind":"standard"}},
			{"snippet":{"language":"fr","trackKind":"standard"}}
		]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.NewClient("key", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	tracks, err := client.ListCaptionTracks(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("ListCaptionTracks returned error: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Language != "en" || tracks[1].Language != "fr" {
		t.Fatalf("unexpected tracks: %+v", tracks)
	}
}

func TestTopComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commentThreads" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("order") != "relevance" {
			t.Fatalf("expected relevance ordering, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("maxResults") != "50" {
			t.Fatalf("expected maxResults=50, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"items":[
			{"snippet":{"topLevelComment":{"snippet":{"textOriginal":"This is from The Matrix"}}}},
			{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"fallback text"}}}}
		]}`))
	}))
	t.Cleanup(server.Close)

	client, err := youtube.NewClient("key", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	comments, err := client.TopComments(context.Background(), "abc123def45", 50)
	if err != nil {
		t.Fatalf("TopComments returned error: %v", err)
	}
	if len(comments) != 2 || comments[0] != "This is from The Matrix" || comments[1] != "fallback text" {
		t.Fatalf("unexpected comments: %v", comments)
	}
}

func TestClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client, err := youtube.NewClient("key", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.ListCaptionTracks(context.Background(), "abc123def45"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
