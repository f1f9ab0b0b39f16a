package identification

import (
	"fmt"

	"reelid/internal/services"
	"reelid/internal/youtube"
)

// CandidateMatch is a single ranked guess produced by the model.
type CandidateMatch struct {
	Title      string   `json:"title"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Ranking is the full model output: the ordered candidate list plus the
// narrative reasoning that accompanied it.
type Ranking struct {
	Candidates []CandidateMatch `json:"candidates"`
	Reasoning  string           `json:"reasoning"`
}

// ResolvedMovie is a catalog record mapped into presentation-ready fields.
// Missing upstream values become the documented placeholders ("Unknown",
// "N/A") rather than zero values so callers never special-case absence.
type ResolvedMovie struct {
	CatalogID int64    `json:"catalog_id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	Poster    string   `json:"poster"`
	Plot      string   `json:"plot"`
	Rating    string   `json:"rating"`
	Runtime   string   `json:"runtime"`
	Genres    []string `json:"genres"`
	Trailer   string   `json:"trailer,omitempty"`
	// Reasoning is the ranking narrative. The orchestrator fills it in after
	// resolution; the resolver itself leaves it empty.
	Reasoning string `json:"reasoning,omitempty"`
}

// MovieMatch joins a resolved catalog record with the model's assessment of
// that candidate.
type MovieMatch struct {
	ResolvedMovie
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// StreamingProvider is one watch offer attached to the best match.
type StreamingProvider struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
	Link string `json:"link,omitempty"`
	Type string `json:"type"`
}

// SimilarTitle is a related catalog entry attached to the best match.
type SimilarTitle struct {
	CatalogID int64  `json:"catalog_id"`
	Title     string `json:"title"`
	Year      string `json:"year"`
	Poster    string `json:"poster,omitempty"`
}

// EnrichmentBundle carries the supplemental detail fetched for the best match
// only. All fields are best-effort and may be empty.
type EnrichmentBundle struct {
	Providers []StreamingProvider `json:"providers,omitempty"`
	Similar   []SimilarTitle      `json:"similar,omitempty"`
}

// Result is the complete outcome of one identification run.
type Result struct {
	VideoID    string                `json:"video_id"`
	Metadata   youtube.VideoMetadata `json:"metadata"`
	Matches    []MovieMatch          `json:"matches"`
	Reasoning  string                `json:"reasoning"`
	Enrichment EnrichmentBundle      `json:"enrichment"`
}

// Best returns the highest-ranked resolved match, or nil when empty.
func (r *Result) Best() *MovieMatch {
	if r == nil || len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// NoMatchError reports that no ranked candidate resolved against the catalog.
// It carries the model's top guess and narrative so the caller can still show
// the user something useful.
type NoMatchError struct {
	TopGuess  string
	Reasoning string
}

func (e *NoMatchError) Error() string {
	if e.TopGuess == "" {
		return "no catalog match for any candidate"
	}
	return fmt.Sprintf("no catalog match for any candidate (best guess: %s)", e.TopGuess)
}

func (e *NoMatchError) Unwrap() error {
	return services.ErrNoMatch
}
