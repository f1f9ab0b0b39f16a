// Package identification turns a YouTube video URL into a ranked set of
// catalog-backed movie matches.
//
// The pipeline has four stages. The aggregator (package youtube) gathers
// best-effort metadata. The Ranker asks the model for exactly three candidate
// titles with per-candidate confidence and reasons, in a single attempt. The
// Resolver maps each candidate onto a TMDB record concurrently, dropping
// candidates the catalog cannot confirm while preserving rank order. The
// Enricher attaches streaming providers and similar titles to the best match
// only.
//
// Failure semantics differ by stage: extraction and ranking failures abort
// the request with typed errors, resolution misses merely thin the candidate
// list, and enrichment failures degrade to an empty bundle.
package identification
