// Package keywords heuristically mines candidate movie-title phrases from
// viewer comment text. It combines phrase-pattern matching ("this is from X",
// "the movie X", "X movie/film") with capitalized n-gram frequency counting.
// False positives are expected and acceptable; the ranker treats the output as
// weak supporting signal only.
package keywords
