// Package tmdb provides the minimal TMDB API client used during movie
// identification.
//
// It authenticates requests and exposes movie search, detail retrieval with
// the videos appendix, regional watch-provider lookups, and the similar-titles
// relation. Responses are strongly typed so the resolution stage can map them
// without ad hoc field access. Options allow tests to supply custom HTTP
// clients and let production cap the outbound request rate.
package tmdb
