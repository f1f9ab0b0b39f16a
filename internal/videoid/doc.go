// Package videoid extracts the platform-assigned video identifier from any of
// its URL forms. Extraction is a pure ordered pattern match with an explicit
// not-found signal; it performs no I/O and accepts arbitrary strings.
package videoid
