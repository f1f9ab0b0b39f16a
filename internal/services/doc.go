// Package services provides shared error classification and context helpers
// used across the identification pipeline.
//
// Errors are tagged with sentinel markers (ErrInput, ErrRanker, ErrNoMatch,
// ...) via Wrap so callers can classify failures with errors.Is without
// depending on message text. HTTPStatus translates the taxonomy for the API
// layer: input and ranker failures are fatal, everything else degrades inside
// the pipeline and never reaches the caller as an error.
package services
