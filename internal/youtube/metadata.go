package youtube

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"reelid/internal/keywords"
	"reelid/internal/logging"
	"reelid/internal/videoid"
)

// VideoMetadata is the aggregated descriptive signal for one video. It is
// produced once per request and never persisted server-side.
type VideoMetadata struct {
	VideoID           string   `json:"video_id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Thumbnail         string   `json:"thumbnail"`
	Channel           string   `json:"channel"`
	PublishedAt       string   `json:"published_at"`
	CaptionsAvailable bool     `json:"captions_available"`
	CaptionsSummary   string   `json:"captions_summary"`
	Keywords          []string `json:"keywords"`
}

// Aggregator gathers best-effort video metadata. The fetch chain degrades
// rather than fails: credentialed API, then public oEmbed, then an all-empty
// record carrying only the conventionally constructed thumbnail URL.
type Aggregator struct {
	client      *Client
	oembed      *OEmbedClient
	logger      *slog.Logger
	maxComments int
}

// NewAggregator builds an aggregator. client may be nil when no API
// credential is configured; oembed must not be nil.
func NewAggregator(client *Client, oembed *OEmbedClient, maxComments int, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Aggregator{
		client:      client,
		oembed:      oembed,
		logger:      logging.WithComponent(logger, "youtube"),
		maxComments: maxComments,
	}
}

// Fetch returns best-effort metadata for the identifier. It never fails:
// every upstream error degrades to a smaller result.
func (a *Aggregator) Fetch(ctx context.Context, videoID string) VideoMetadata {
	if a.client != nil {
		if meta, ok := a.fetchPrimary(ctx, videoID); ok {
			return meta
		}
	}
	if meta, ok := a.fetchOEmbed(ctx, videoID); ok {
		return meta
	}
	// Terminal fallback: nothing but the constructed thumbnail.
	a.logger.Warn("all metadata sources failed", logging.String("video_id", videoID))
	return VideoMetadata{
		VideoID:   videoID,
		Thumbnail: videoid.ThumbnailURL(videoID),
	}
}

func (a *Aggregator) fetchPrimary(ctx context.Context, videoID string) (VideoMetadata, bool) {
	snippet, err := a.client.VideoSnippet(ctx, videoID)
	if err != nil {
		a.logger.Warn("video snippet fetch failed, falling back to oembed",
			logging.String("video_id", videoID),
			logging.Error(err))
		return VideoMetadata{}, false
	}

	meta := VideoMetadata{
		VideoID:     videoID,
		Title:       snippet.Title,
		Description: snippet.Description,
		Channel:     snippet.ChannelTitle,
		PublishedAt: snippet.PublishedAt,
		Thumbnail:   snippet.Thumbnails.Best(),
	}
	if meta.Thumbnail == "" {
		meta.Thumbnail = videoid.ThumbnailURL(videoID)
	}

	// Captions and comments are independent reads keyed by the same id, so
	// they run concurrently. Either may fail without affecting the other.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tracks, err := a.client.ListCaptionTracks(ctx, videoID)
		if err != nil || len(tracks) == 0 {
			if err != nil {
				a.logger.Debug("caption listing unavailable",
					logging.String("video_id", videoID),
					logging.Error(err))
			}
			return
		}
		meta.CaptionsAvailable = true
		meta.CaptionsSummary = summarizeCaptionLanguages(tracks)
	}()
	go func() {
		defer wg.Done()
		comments, err := a.client.TopComments(ctx, videoID, a.maxComments)
		if err != nil {
			a.logger.Debug("comment fetch unavailable",
				logging.String("video_id", videoID),
				logging.Error(err))
			return
		}
		meta.Keywords = keywords.Extract(comments)
	}()
	wg.Wait()

	a.logger.Info("metadata aggregated",
		logging.String("video_id", videoID),
		logging.String("title", meta.Title),
		logging.Bool("captions", meta.CaptionsAvailable),
		logging.Int("keywords", len(meta.Keywords)))
	return meta, true
}

func (a *Aggregator) fetchOEmbed(ctx context.Context, videoID string) (VideoMetadata, bool) {
	if a.oembed == nil {
		return VideoMetadata{}, false
	}
	result, err := a.oembed.Lookup(ctx, videoID)
	if err != nil {
		a.logger.Warn("oembed fallback failed",
			logging.String("video_id", videoID),
			logging.Error(err))
		return VideoMetadata{}, false
	}
	a.logger.Info("metadata from oembed fallback",
		logging.String("video_id", videoID),
		logging.String("title", result.Title))
	return VideoMetadata{
		VideoID:   videoID,
		Title:     result.Title,
		Channel:   result.AuthorName,
		Thumbnail: videoid.ThumbnailURL(videoID),
	}, true
}

// summarizeCaptionLanguages builds a human-readable listing of caption
// languages, e.g. "Captions available in: English, French".
func summarizeCaptionLanguages(tracks []CaptionTrack) string {
	seen := make(map[string]struct{}, len(tracks))
	var names []string
	for _, track := range tracks {
		code := strings.TrimSpace(track.Language)
		if code == "" {
			continue
		}
		name := code
		if tag, err := language.Parse(code); err == nil {
			name = display.English.Languages().Name(tag)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return "Captions available in: " + strings.Join(names, ", ")
}
