package identification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"reelid/internal/logging"
	"reelid/internal/services"
	"reelid/internal/services/llm"
	"reelid/internal/youtube"
)

const rankerComponent = "ranker"

// completer is the slice of the LLM client the ranker uses.
type completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Ranker asks the model for candidate movie titles given aggregated video
// metadata. The model is called exactly once per request; rate-limit and
// quota responses surface as typed errors instead of being retried.
type Ranker struct {
	client    completer
	wantCount int
	logger    *slog.Logger
}

// NewRanker builds a ranker expecting wantCount candidates per response.
func NewRanker(client completer, wantCount int, logger *slog.Logger) *Ranker {
	if wantCount <= 0 {
		wantCount = 3
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Ranker{
		client:    client,
		wantCount: wantCount,
		logger:    logging.WithComponent(logger, rankerComponent),
	}
}

// Rank returns the model's ordered candidate list for the metadata. Any
// failure here is fatal to the request: there is no fallback ranking.
func (r *Ranker) Rank(ctx context.Context, meta youtube.VideoMetadata) (Ranking, error) {
	content, err := r.client.CompleteJSON(ctx, systemPrompt, buildUserPrompt(meta))
	if err != nil {
		return Ranking{}, classifyRankerError(err)
	}

	var ranking Ranking
	if err := llm.DecodeJSON(content, &ranking); err != nil {
		return Ranking{}, services.Wrap(services.ErrRanker, rankerComponent, "decode", "model returned unparseable candidates", err)
	}
	if err := r.validate(ranking); err != nil {
		return Ranking{}, services.Wrap(services.ErrRanker, rankerComponent, "validate", "model response violated candidate contract", err)
	}

	r.logger.Info("candidates ranked",
		logging.String("top", ranking.Candidates[0].Title),
		logging.Int("top_confidence", ranking.Candidates[0].Confidence))
	return ranking, nil
}

func (r *Ranker) validate(ranking Ranking) error {
	if len(ranking.Candidates) != r.wantCount {
		return fmt.Errorf("expected %d candidates, got %d", r.wantCount, len(ranking.Candidates))
	}
	for i, candidate := range ranking.Candidates {
		if strings.TrimSpace(candidate.Title) == "" {
			return fmt.Errorf("candidate %d has empty title", i)
		}
		if candidate.Confidence < 1 || candidate.Confidence > 100 {
			return fmt.Errorf("candidate %d confidence %d outside 1-100", i, candidate.Confidence)
		}
		if len(candidate.Reasons) < 2 || len(candidate.Reasons) > 4 {
			return fmt.Errorf("candidate %d has %d reasons, want 2-4", i, len(candidate.Reasons))
		}
	}
	return nil
}

func classifyRankerError(err error) error {
	switch {
	case llm.IsRateLimited(err):
		return services.Wrap(services.ErrRateLimited, rankerComponent, "complete", "model provider rate limited the request", err)
	case llm.IsQuotaExhausted(err):
		return services.Wrap(services.ErrQuota, rankerComponent, "complete", "model provider credits exhausted", err)
	default:
		return services.Wrap(services.ErrRanker, rankerComponent, "complete", "model request failed", err)
	}
}
