package identification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"reelid/internal/config"
	"reelid/internal/identification/tmdb"
	"reelid/internal/logging"
	"reelid/internal/services"
	"reelid/internal/services/llm"
	"reelid/internal/videoid"
	"reelid/internal/youtube"
)

// Identifier runs the full pipeline: identifier extraction, metadata
// aggregation, candidate ranking, catalog resolution, and best-match
// enrichment.
type Identifier struct {
	aggregator *youtube.Aggregator
	ranker     *Ranker
	resolver   *Resolver
	enricher   *Enricher
	logger     *slog.Logger
}

// NewIdentifier assembles a pipeline from pre-built stages.
func NewIdentifier(aggregator *youtube.Aggregator, ranker *Ranker, resolver *Resolver, enricher *Enricher, logger *slog.Logger) *Identifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Identifier{
		aggregator: aggregator,
		ranker:     ranker,
		resolver:   resolver,
		enricher:   enricher,
		logger:     logging.WithComponent(logger, "identify"),
	}
}

// NewFromConfig wires the whole pipeline from configuration. The YouTube API
// client is optional; everything else is required and validated upstream.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Identifier, error) {
	var ytClient *youtube.Client
	if cfg.YouTube.APIKey != "" {
		client, err := youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "identify", "youtube client", "invalid youtube settings", err)
		}
		ytClient = client
	}
	oembed, err := youtube.NewOEmbedClient(cfg.YouTube.OEmbedURL, time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "identify", "oembed client", "invalid oembed settings", err)
	}
	catalog, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "identify", "tmdb client", "invalid tmdb settings", err)
	}
	model := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})

	aggregator := youtube.NewAggregator(ytClient, oembed, cfg.YouTube.CommentPageSize, logger)
	ranker := NewRanker(model, cfg.LLM.Candidates, logger)
	resolver := NewResolver(catalog, cfg.TMDB.ImageBaseURL, logger)
	enricher := NewEnricher(catalog, cfg.TMDB.ImageBaseURL, cfg.TMDB.WatchRegion, logger)
	return NewIdentifier(aggregator, ranker, resolver, enricher, logger), nil
}

// Identify runs the pipeline for one video URL.
//
// Extraction and ranking failures abort the request. Metadata aggregation
// never fails. Per-candidate resolution failures drop the candidate while
// preserving the ranked order of the survivors; if no candidate survives the
// error is a NoMatchError carrying the model's top guess.
func (i *Identifier) Identify(ctx context.Context, rawURL string) (*Result, error) {
	videoID, ok := videoid.Extract(rawURL)
	if !ok {
		return nil, services.Wrap(services.ErrInput, "identify", "extract", "url is not a recognized youtube video link", nil)
	}

	started := time.Now()
	meta := i.aggregator.Fetch(ctx, videoID)

	ranking, err := i.ranker.Rank(ctx, meta)
	if err != nil {
		return nil, err
	}

	matches := i.resolveAll(ctx, ranking.Candidates)
	for idx := range matches {
		matches[idx].Reasoning = ranking.Reasoning
	}
	if len(matches) == 0 {
		return nil, &NoMatchError{
			TopGuess:  ranking.Candidates[0].Title,
			Reasoning: ranking.Reasoning,
		}
	}

	result := &Result{
		VideoID:   videoID,
		Metadata:  meta,
		Matches:   matches,
		Reasoning: ranking.Reasoning,
	}
	result.Enrichment = i.enricher.Enrich(ctx, matches[0].CatalogID)

	i.logger.Info("identification complete",
		logging.String("video_id", videoID),
		logging.String("best", matches[0].Title),
		logging.Int("confidence", matches[0].Confidence),
		logging.Int("matches", len(matches)),
		logging.Duration("elapsed", time.Since(started)))
	return result, nil
}

// resolveAll resolves every candidate concurrently, then compacts the results
// in ranked order. Resolution errors are logged and treated like misses.
func (i *Identifier) resolveAll(ctx context.Context, candidates []CandidateMatch) []MovieMatch {
	resolved := make([]*ResolvedMovie, len(candidates))
	var wg sync.WaitGroup
	for idx, candidate := range candidates {
		wg.Add(1)
		go func(idx int, candidate CandidateMatch) {
			defer wg.Done()
			movie, err := i.resolver.Resolve(ctx, candidate.Title)
			if err != nil {
				i.logger.Warn("candidate resolution failed",
					logging.String("title", candidate.Title),
					logging.Error(err))
				return
			}
			resolved[idx] = movie
		}(idx, candidate)
	}
	wg.Wait()

	matches := make([]MovieMatch, 0, len(candidates))
	for idx, movie := range resolved {
		if movie == nil {
			continue
		}
		matches = append(matches, MovieMatch{
			ResolvedMovie: *movie,
			Confidence:    candidates[idx].Confidence,
			Reasons:       candidates[idx].Reasons,
		})
	}
	return matches
}
